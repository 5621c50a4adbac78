package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-admin/internal/api/http/handlers"
	"github.com/spec-kit/agent-admin/internal/auth"
	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Teams          *handlers.TeamsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	app.Post("/login", cfg.Auth.Login)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	readers := auth.RequireRole(domain.RoleAdmin, domain.RoleSupervisor)
	admins := auth.RequireRole(domain.RoleAdmin)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", readers, cfg.Users.List)
	users.Get("/:id", readers, cfg.Users.Get)
	users.Post("/", admins, cfg.Users.Create)
	users.Put("/:id", admins, cfg.Users.Update)
	users.Delete("/:id", admins, cfg.Users.Delete)

	api.Get("/teams", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Teams.List)
}
