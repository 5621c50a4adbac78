package handlers

import (
	"context"

	"github.com/spec-kit/agent-admin/internal/auth"
	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/service"
)

// SessionService is the login flow used by AuthHandler.
type SessionService interface {
	Login(ctx context.Context, username string) (*service.LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// UserManager is the user administration flow used by UsersHandler.
type UserManager interface {
	List(ctx context.Context, filters service.UserListFilters) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, input service.CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, input service.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// TeamLister lists teams for TeamsHandler.
type TeamLister interface {
	List(ctx context.Context) ([]domain.Team, error)
}
