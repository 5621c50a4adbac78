package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/spec-kit/agent-admin/internal/domain"
)

// UserRepository defines persistence access for agent records.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id int64) error
}

// UserFilter holds the optional equality filters for listing.
type UserFilter struct {
	Active *bool
	TeamID *int64
}

const selectUsers = `
        SELECT a.agent_id, a.agent_code, a.agent_name, a.team_id, t.team_name,
               a.role, a.is_active, a.created_at
        FROM agents a
        LEFT JOIN teams t ON a.team_id = t.team_id`

type userRepository struct {
	db      *sql.DB
	dialect dialect
}

// NewUserRepository returns a database/sql backed implementation for driver.
func NewUserRepository(db *sql.DB, driver string) UserRepository {
	return &userRepository{db: db, dialect: dialect(driver)}
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	query := selectUsers
	args := []any{}
	clauses := []string{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, "a.is_active = ?")
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		clauses = append(clauses, "a.team_id = ?")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY a.agent_id ASC"

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, translateError(rows.Err())
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := selectUsers + " WHERE a.agent_id = ?"
	user, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.rebind(query), id))
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := selectUsers + " WHERE LOWER(a.agent_code) = LOWER(?)"
	user, err := scanUser(r.db.QueryRowContext(ctx, r.dialect.rebind(query), username))
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	const query = `SELECT COUNT(*) FROM agents WHERE LOWER(agent_code) = LOWER(?)`

	var count int64
	if err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), username).Scan(&count); err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO agents (agent_code, agent_name, team_id, role, is_active)
        VALUES (?, ?, ?, ?, ?)
        RETURNING agent_id, created_at`

	var createdAt dbTime
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query),
		user.Username,
		user.FullName,
		nullableID(user.TeamID),
		string(user.Role),
		user.IsActive,
	).Scan(&user.ID, &createdAt)
	if err != nil {
		return translateError(err)
	}
	user.CreatedAt = createdAt.Time
	return nil
}

// Update writes the mutable columns. agent_code is never written.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE agents SET agent_name = ?, team_id = ?, role = ?, is_active = ?
        WHERE agent_id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.rebind(query),
		user.FullName,
		nullableID(user.TeamID),
		string(user.Role),
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE agents SET is_active = ? WHERE agent_id = ?`

	res, err := r.db.ExecContext(ctx, r.dialect.rebind(query), false, id)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user      domain.User
		teamID    sql.NullInt64
		teamName  sql.NullString
		role      string
		createdAt dbTime
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FullName,
		&teamID,
		&teamName,
		&role,
		&user.IsActive,
		&createdAt,
	); err != nil {
		return nil, err
	}
	if teamID.Valid {
		id := teamID.Int64
		user.TeamID = &id
	}
	if teamName.Valid {
		name := teamName.String
		user.TeamName = &name
	}
	user.Role = domain.Role(role)
	user.CreatedAt = createdAt.Time
	return &user, nil
}
