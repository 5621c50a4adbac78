package repository

import (
	"context"
	"database/sql"

	"github.com/spec-kit/agent-admin/internal/domain"
)

// TeamRepository reads the team lookup table.
type TeamRepository interface {
	List(ctx context.Context) ([]domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type teamRepository struct {
	db      *sql.DB
	dialect dialect
}

// NewTeamRepository constructs repository.
func NewTeamRepository(db *sql.DB, driver string) TeamRepository {
	return &teamRepository{db: db, dialect: dialect(driver)}
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	const query = `SELECT team_id, team_name FROM teams ORDER BY team_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.Team{}
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	return result, translateError(rows.Err())
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	const query = `SELECT team_id, team_name FROM teams WHERE team_id = ?`

	var team domain.Team
	if err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), id).Scan(&team.ID, &team.Name); err != nil {
		return nil, translateError(err)
	}
	return &team, nil
}

func (r *teamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT COUNT(*) FROM teams WHERE team_id = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), id).Scan(&count); err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}
