package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/agent-admin/internal/config"
	"github.com/spec-kit/agent-admin/internal/domain"
	"github.com/spec-kit/agent-admin/internal/persistence"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	db, err := persistence.OpenDatabase(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    persistence.SQLiteDSN(":memory:"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, persistence.RunMigrations(ctx, db.Handle(), config.DriverSQLite, logger))
	return db.Handle()
}

func TestSQLite_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	users := NewUserRepository(db, config.DriverSQLite)
	teams := NewTeamRepository(db, config.DriverSQLite)

	teamID := int64(1)
	agent := &domain.User{Username: "AG001", FullName: "Alice Agent", Role: domain.RoleAgent, TeamID: &teamID, IsActive: true}
	require.NoError(t, users.Create(ctx, agent))
	assert.NotZero(t, agent.ID)
	assert.False(t, agent.CreatedAt.IsZero())

	admin := &domain.User{Username: "AD001", FullName: "Root Admin", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, users.Create(ctx, admin))

	fetched, err := users.GetByUsername(ctx, "ag001")
	require.NoError(t, err)
	assert.Equal(t, agent.ID, fetched.ID)
	require.NotNil(t, fetched.TeamName)
	assert.Equal(t, "Team Alpha", *fetched.TeamName)

	exists, err := users.UsernameExists(ctx, "ad001")
	require.NoError(t, err)
	assert.True(t, exists)

	fetched.FullName = "Alice Renamed"
	fetched.TeamID = nil
	fetched.Role = domain.RoleAdmin
	require.NoError(t, users.Update(ctx, fetched))

	require.NoError(t, users.SoftDelete(ctx, agent.ID))

	active := true
	list, err := users.List(ctx, UserFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "AD001", list[0].Username)

	inactive := false
	list, err = users.List(ctx, UserFilter{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Renamed", list[0].FullName)
	assert.Nil(t, list[0].TeamID)

	all, err := users.List(ctx, UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Less(t, all[0].ID, all[1].ID)

	teamList, err := teams.List(ctx)
	require.NoError(t, err)
	assert.Len(t, teamList, 3)

	ok, err := teams.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_ConstraintBackstop(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	users := NewUserRepository(db, config.DriverSQLite)

	require.NoError(t, users.Create(ctx, &domain.User{Username: "SP001", FullName: "Sue", Role: domain.RoleAdmin, IsActive: true}))

	err := users.Create(ctx, &domain.User{Username: "sp001", FullName: "Sue Again", Role: domain.RoleAdmin, IsActive: true})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	missing := int64(404)
	err = users.Create(ctx, &domain.User{Username: "AG404", FullName: "Nobody", Role: domain.RoleAgent, TeamID: &missing, IsActive: true})
	assert.ErrorIs(t, err, ErrTeamMissing)

	all, err := users.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_SchemaMismatch(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.ExecContext(ctx, "ALTER TABLE agents RENAME COLUMN agent_name TO name")
	require.NoError(t, err)

	_, err = NewUserRepository(db, config.DriverSQLite).List(ctx, UserFilter{})
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
