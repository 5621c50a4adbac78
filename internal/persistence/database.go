package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spec-kit/agent-admin/internal/config"
)

// sqlitePragmas are applied to every SQLite connection through the DSN.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"busy_timeout(5000)",
}

// Database wraps the shared *sql.DB together with the driver it speaks.
type Database struct {
	DB     *sql.DB
	Driver string
}

// OpenDatabase connects to the configured relational store and verifies it
// with a ping.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Database, error) {
	driverName, dsn, err := driverDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		// One writer connection; also keeps ":memory:" databases coherent.
		db.SetMaxOpenConns(1)
	default:
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		db.SetConnMaxIdleTime(30 * time.Second)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	logger.Info("connected to database", zap.String("driver", cfg.Driver))
	return &Database{DB: db, Driver: cfg.Driver}, nil
}

func driverDSN(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return "", "", fmt.Errorf("create sqlite dir: %w", err)
				}
			}
			dsn = SQLiteDSN(cfg.SQLitePath)
		}
		return "sqlite", dsn, nil
	case config.DriverPostgres:
		return "pgx", cfg.DSN, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN builds a modernc.org/sqlite DSN with the standard pragmas.
func SQLiteDSN(path string) string {
	params := make([]string, 0, len(sqlitePragmas))
	for _, pragma := range sqlitePragmas {
		params = append(params, "_pragma="+pragma)
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// Close releases the connection pool.
func (d *Database) Close() {
	if d != nil && d.DB != nil {
		_ = d.DB.Close()
	}
}

// Ping verifies database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return errors.New("database not configured")
	}
	return d.DB.PingContext(ctx)
}

// Handle returns the underlying *sql.DB.
func (d *Database) Handle() *sql.DB {
	if d == nil {
		return nil
	}
	return d.DB
}
