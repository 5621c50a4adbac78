package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-admin/internal/api/dto"
)

// TeamsHandler lists teams for the user form.
type TeamsHandler struct {
	teams TeamLister
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teams TeamLister) *TeamsHandler {
	return &TeamsHandler{teams: teams}
}

// List handles GET /api/teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	teams, err := h.teams.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewTeamResponses(teams)})
}
