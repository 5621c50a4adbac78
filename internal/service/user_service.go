package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/repository"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

const invalidUsernameFormat = "Invalid username format. Use AGxxx, SPxxx, or ADxxx (001-999)"

// UserService manages agent records.
type UserService struct {
	users  repository.UserRepository
	teams  repository.TeamRepository
	logger *zap.Logger
}

// UserDependencies encapsulates repositories required for user management.
type UserDependencies struct {
	UserRepo repository.UserRepository
	TeamRepo repository.TeamRepository
	Logger   *zap.Logger
}

// UserListFilters define listing parameters.
type UserListFilters struct {
	Active *bool
	TeamID *int64
}

// CreateUserInput carries the fields accepted on creation. An empty Role
// is derived from the username prefix.
type CreateUserInput struct {
	Username string
	FullName string
	Role     domain.Role
	TeamID   *int64
}

// OptionalTeam distinguishes "not supplied" from an explicit null team.
type OptionalTeam struct {
	Set bool
	ID  *int64
}

// UpdateUserInput carries the fields a caller may send on update. Nil
// fields keep their stored values.
type UpdateUserInput struct {
	Username *string
	FullName *string
	Role     *domain.Role
	Team     OptionalTeam
	Active   *bool
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:  deps.UserRepo,
		teams:  deps.TeamRepo,
		logger: logger.Named("user_service"),
	}
}

// List returns users ordered by id, optionally filtered.
func (s *UserService) List(ctx context.Context, filters UserListFilters) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{Active: filters.Active, TeamID: filters.TeamID})
	if err != nil {
		return nil, logFailure(s.logger, "list users", storeError(err, "User", 0))
	}
	return users, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, logFailure(s.logger, "get user", storeError(err, "User", id))
	}
	return user, nil
}

// Create validates and persists a new active user.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user, err := s.create(ctx, input)
	if err != nil {
		return nil, logFailure(s.logger, "create user", err)
	}
	s.logger.Info("user created", zap.Int64("id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *UserService) create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !domain.IsValidUsername(input.Username) {
		return nil, apperrors.NewValidationError(invalidUsernameFormat, map[string]any{"field": "username"})
	}

	fullName, err := validateFullName(input.FullName)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role, _ = domain.RoleFromUsername(input.Username)
	}
	if !role.Valid() {
		return nil, invalidRole(role)
	}

	exists, err := s.users.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, storeError(err, "User", 0)
	}
	if exists {
		return nil, apperrors.NewUsernameExists(input.Username)
	}

	if err := s.checkTeam(ctx, role, input.TeamID); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: input.Username,
		FullName: fullName,
		Role:     role,
		TeamID:   input.TeamID,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, writeError(err, user)
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, storeError(err, "User", user.ID)
	}
	return created, nil
}

// Update applies the mutable fields of input to the user with id.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.update(ctx, id, input)
	if err != nil {
		return nil, logFailure(s.logger, "update user", err)
	}
	s.logger.Info("user updated", zap.Int64("id", user.ID))
	return user, nil
}

func (s *UserService) update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User", id)
	}

	if input.Username != nil && *input.Username != existing.Username {
		return nil, apperrors.NewUsernameImmutable()
	}

	updated := *existing
	if input.FullName != nil {
		fullName, err := validateFullName(*input.FullName)
		if err != nil {
			return nil, err
		}
		updated.FullName = fullName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, invalidRole(*input.Role)
		}
		updated.Role = *input.Role
	}
	if input.Team.Set {
		updated.TeamID = input.Team.ID
	}
	if input.Active != nil {
		updated.IsActive = *input.Active
	}

	var newTeam *int64
	if input.Team.Set {
		newTeam = input.Team.ID
	}
	if updated.Role.RequiresTeam() && updated.TeamID == nil {
		return nil, apperrors.NewTeamRequired(updated.Role.String())
	}
	if newTeam != nil {
		if err := s.checkTeam(ctx, updated.Role, newTeam); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, writeError(err, &updated)
	}

	result, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User", id)
	}
	return result, nil
}

// Delete soft-deletes the user. Deleting an inactive user succeeds without
// writing.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return logFailure(s.logger, "delete user", storeError(err, "User", id))
	}
	if !user.IsActive {
		s.logger.Debug("user already inactive", zap.Int64("id", id))
		return nil
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		return logFailure(s.logger, "delete user", storeError(err, "User", id))
	}
	s.logger.Info("user deactivated", zap.Int64("id", id))
	return nil
}

// EnsureAdmin creates the named admin when it does not exist yet. The
// boolean reports whether a record was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, fullName string) (*domain.User, bool, error) {
	if role, ok := domain.RoleFromUsername(username); !ok || role != domain.RoleAdmin || !domain.IsValidUsername(username) {
		return nil, false, apperrors.NewValidationError("bootstrap admin username must be ADxxx", map[string]any{"username": username})
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, logFailure(s.logger, "ensure admin", storeError(err, "User", 0))
	}

	user, err := s.Create(ctx, CreateUserInput{Username: username, FullName: fullName, Role: domain.RoleAdmin})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// checkTeam enforces the team-required rule and that a referenced team exists.
func (s *UserService) checkTeam(ctx context.Context, role domain.Role, teamID *int64) error {
	if teamID == nil {
		if role.RequiresTeam() {
			return apperrors.NewTeamRequired(role.String())
		}
		return nil
	}
	ok, err := s.teams.Exists(ctx, *teamID)
	if err != nil {
		return storeError(err, "Team", *teamID)
	}
	if !ok {
		return apperrors.NewTeamNotFound(*teamID)
	}
	return nil
}

// writeError maps constraint violations to the same errors as the pre-checks.
func writeError(err error, user *domain.User) error {
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		return apperrors.NewUsernameExists(user.Username)
	case errors.Is(err, repository.ErrTeamMissing):
		var teamID int64
		if user.TeamID != nil {
			teamID = *user.TeamID
		}
		return apperrors.NewTeamNotFound(teamID)
	default:
		return storeError(err, "User", user.ID)
	}
}

func validateFullName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < domain.MinFullNameLength {
		return "", apperrors.NewValidationError("Full name must be at least 2 characters", map[string]any{"field": "fullName"})
	}
	return trimmed, nil
}

func invalidRole(role domain.Role) error {
	return apperrors.NewValidationError("Role must be one of Agent, Supervisor, Admin", map[string]any{"field": "role", "value": string(role)})
}
