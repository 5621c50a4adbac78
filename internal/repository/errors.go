package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Storage-level constraint violations, classified from driver error codes.
var (
	ErrUsernameTaken  = errors.New("agent_code unique constraint violated")
	ErrTeamMissing    = errors.New("team_id foreign key constraint violated")
	ErrSchemaMismatch = errors.New("schema does not match expected columns")
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgUndefinedColumn     = "42703"
	pgUndefinedTable      = "42P01"
)

// translateError maps driver errors to the sentinels above, keeping the
// driver error in the chain. Unrecognized errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", ErrTeamMissing, err)
		case sqlite3.SQLITE_ERROR:
			// SQLite reports missing columns and tables only through the
			// message of a generic SQLITE_ERROR.
			msg := sqliteErr.Error()
			if strings.Contains(msg, "no such column") || strings.Contains(msg, "no such table") {
				return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
			}
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrTeamMissing, err)
		case pgUndefinedColumn, pgUndefinedTable:
			return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
		}
	}
	return err
}
