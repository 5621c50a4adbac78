package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/repository"
)

// TeamService exposes the team lookup table.
type TeamService struct {
	teams  repository.TeamRepository
	logger *zap.Logger
}

// NewTeamService builds the service.
func NewTeamService(teams repository.TeamRepository, logger *zap.Logger) *TeamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{teams: teams, logger: logger.Named("team_service")}
}

// List returns all teams ordered by id.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, logFailure(s.logger, "list teams", storeError(err, "Team", 0))
	}
	return teams, nil
}
