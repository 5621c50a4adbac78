package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-admin/internal/api/dto"
	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/service"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

// UsersHandler exposes the user administration endpoints.
type UsersHandler struct {
	users UserManager
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserManager) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filters, err := parseUserQuery(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponses(users), "count": len(users)})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Username: strings.TrimSpace(req.Username),
		FullName: req.FullName,
		Role:     domain.Role(req.Role),
		TeamID:   req.TeamID.Value,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}

	input := service.UpdateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Team:     service.OptionalTeam{Set: req.TeamID.Set, ID: req.TeamID.Value},
		Active:   req.IsActive,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	if req.Status != nil {
		active, ok := domain.StatusActive(domain.UserStatus(*req.Status))
		if !ok {
			return apperrors.NewValidationError("Status must be Active or Inactive", map[string]any{"field": "status"})
		}
		input.Active = &active
	}

	user, err := h.users.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func parseUserQuery(c *fiber.Ctx) (service.UserListFilters, error) {
	var filters service.UserListFilters
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, apperrors.NewValidationError("active must be true or false", map[string]any{"active": raw})
		}
		filters.Active = &active
	}
	if raw := c.Query("teamId"); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filters, apperrors.NewValidationError("teamId must be an integer", map[string]any{"teamId": raw})
		}
		filters.TeamID = &teamID
	}
	return filters, nil
}
