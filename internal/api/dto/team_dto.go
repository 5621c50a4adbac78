package dto

import "github.com/spec-kit/agent-admin/internal/domain"

// TeamResponse is the public team representation.
type TeamResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewTeamResponses converts domain teams.
func NewTeamResponses(teams []domain.Team) []TeamResponse {
	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamResponse{ID: t.ID, Name: t.Name})
	}
	return out
}
