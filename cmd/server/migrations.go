package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/migrate"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
)

// errNoSchema is returned when migrations are requested for the memory driver.
var errNoSchema = errors.New("the memory driver has no schema to migrate")

// runMigrations executes a migration command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	var (
		db  *sql.DB
		src migrate.Source
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err = setupAppDatabase(ctx, cfg.Database, logger)
		src = postgres.Migrations
	case config.DriverSQLite:
		db, err = sqlite.Connect(ctx, cfg.Database.URL)
		src = sqlite.Migrations
	case config.DriverMemory:
		return errNoSchema
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("Error closing database connection", "error", cerr)
		}
	}()

	if err := migrate.Run(ctx, db, src, command, logger); err != nil {
		return err
	}

	if command == migrate.CommandVersion {
		return nil
	}

	version, err := migrate.Version(ctx, db, src)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("Schema version", "version", version, "driver", cfg.Database.Driver)
	return nil
}
