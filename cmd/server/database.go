package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/migrate"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/store/memory"
)

// connectTimeout bounds the initial ping of a PostgreSQL database.
const connectTimeout = 5 * time.Second

// setupTaskStore builds the task store for the configured driver. The
// returned *sql.DB is nil for the memory driver; otherwise the caller owns it.
func setupTaskStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.TaskStore, *sql.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory task store; data is lost on shutdown")
		return memory.NewTaskStore(logger), nil, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		logger.Info("Database connection established", "driver", cfg.Database.Driver)
		return sqlite.NewSQLiteTaskStore(db, logger), db, nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := migrate.Run(ctx, db, postgres.Migrations, migrate.CommandUp, logger); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return postgres.NewPostgresTaskStore(db, logger), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// setupAppDatabase establishes a connection to PostgreSQL and configures the connection pool.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	logger.Info("Database connection established",
		"driver", cfg.Driver,
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return db, nil
}
