package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/task-api/internal/platform/migrate"
	"github.com/phrazzld/task-api/internal/store"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the embedded SQLite schema.
var Migrations = migrate.Source{
	Dialect: "sqlite3",
	FS:      migrationFiles,
	Dir:     "migrations",
}

// Open creates or opens the SQLite database at path, applies the required
// pragmas and brings the schema up to date. It is safe to call on an
// existing database.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := Connect(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(ctx, db, Migrations, migrate.CommandUp, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Connect opens the database at path without touching the schema.
//
// The connection pool is limited to one connection: SQLite allows a single
// writer and the pragmas are per connection.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return db, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// MapError translates go-sqlite3 constraint failures into
// store.ErrInvalidEntity and sql.ErrNoRows into store.ErrTaskNotFound.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTaskNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	return err
}
