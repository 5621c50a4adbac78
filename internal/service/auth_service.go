package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-admin/internal/auth"
	"github.com/spec-kit/agent-admin/internal/config"
	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/repository"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

// Login outcomes reported to the LoginObserver.
const (
	LoginSucceeded       = "success"
	LoginInvalidUsername = "invalid_username"
	LoginInactive        = "inactive"
	LoginFailed          = "error"
)

// RevocationStore remembers logged-out token IDs until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginObserver is notified of every login attempt outcome.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User    *domain.User
	Session *domain.Session
}

// AuthService coordinates the password-less login flow.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	revoked  RevocationStore
	observer LoginObserver
	logger   *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations RevocationStore
	Observer    LoginObserver
	Logger      *zap.Logger
}

type noopRevocations struct{}

func (noopRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (noopRevocations) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

type noopObserver struct{}

func (noopObserver) ObserveLogin(string) {}

// NewAuthService builds the service. Token secret and lifetime come from cfg.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	svc := &AuthService{
		users:    deps.UserRepo,
		tokenMgr: auth.NewTokenManager(cfg),
		revoked:  deps.Revocations,
		observer: deps.Observer,
		logger:   deps.Logger,
	}
	if svc.revoked == nil {
		svc.revoked = noopRevocations{}
	}
	if svc.observer == nil {
		svc.observer = noopObserver{}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	svc.logger = svc.logger.Named("auth_service")
	return svc
}

// Login authenticates by username alone and issues a session token.
func (s *AuthService) Login(ctx context.Context, username string) (*LoginResult, error) {
	result, err := s.login(ctx, username)
	if err != nil {
		s.observer.ObserveLogin(loginOutcome(err))
		return nil, logFailure(s.logger, "login", err)
	}
	s.observer.ObserveLogin(LoginSucceeded)
	s.logger.Info("login succeeded",
		zap.Int64("agent_id", result.User.ID),
		zap.String("role", result.User.Role.String()),
		zap.Time("expires_at", result.Session.ExpiresAt))
	return result, nil
}

func (s *AuthService) login(ctx context.Context, username string) (*LoginResult, error) {
	if !domain.IsValidUsername(username) {
		return nil, apperrors.NewInvalidUsername()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewInvalidUsername()
		}
		return nil, storeError(err, "User", 0)
	}

	if !user.IsActive {
		return nil, apperrors.NewAccountInactive()
	}

	session, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{User: user, Session: session}, nil
}

// Verify validates a bearer token and reloads its user, rejecting revoked
// tokens and deactivated accounts.
func (s *AuthService) Verify(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid or expired token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, logFailure(s.logger, "check revocation", apperrors.NewInternalError(err))
	}
	if revoked {
		return nil, apperrors.NewUnauthorized("token has been revoked")
	}

	user, err := s.users.GetByID(ctx, claims.AgentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, logFailure(s.logger, "verify token", storeError(err, "User", claims.AgentID))
	}
	if !user.IsActive {
		return nil, apperrors.NewAccountInactive()
	}
	return &auth.Principal{Claims: claims, User: user}, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.NewUnauthorized("authentication required")
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return logFailure(s.logger, "logout", apperrors.NewInternalError(err))
	}
	s.logger.Info("session revoked", zap.Int64("agent_id", claims.AgentID))
	return nil
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func loginOutcome(err error) string {
	switch apperrors.ToDomainError(err).Kind {
	case apperrors.KindInvalidUsername:
		return LoginInvalidUsername
	case apperrors.KindAccountInactive:
		return LoginInactive
	default:
		return LoginFailed
	}
}
