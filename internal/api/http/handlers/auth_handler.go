package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-admin/internal/api/dto"
	"github.com/spec-kit/agent-admin/internal/auth"
	"github.com/spec-kit/agent-admin/internal/domain"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

// AuthHandler exposes login, logout and the current profile.
type AuthHandler struct {
	sessions SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return apperrors.NewValidationError("Username is required", map[string]any{"field": "username"})
	}
	if !domain.IsValidUsername(username) {
		return apperrors.NewValidationError("Invalid username format", map[string]any{"field": "username"})
	}

	result, err := h.sessions.Login(c.UserContext(), username)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success:   true,
		User:      dto.NewProfileResponse(result.User),
		Token:     result.Session.Token,
		ExpiresIn: auth.FormatLifetime(result.Session.Lifetime),
		ExpiresAt: result.Session.ExpiresAt,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(principal.User)})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.sessions.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}
