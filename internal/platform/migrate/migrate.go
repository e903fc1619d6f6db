package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// TableName is the table goose uses to track applied migrations.
const TableName = "schema_migrations"

// Supported migration commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
)

// Commands lists every command accepted by Run.
var Commands = []string{CommandUp, CommandDown, CommandStatus, CommandVersion, CommandReset}

// ErrUnknownCommand is returned by Run for commands outside Commands.
var ErrUnknownCommand = errors.New("unknown migration command")

// Source describes a set of embedded migrations for one goose dialect.
type Source struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the migration files.
	FS fs.FS
	// Dir is the directory inside FS containing the .sql files.
	Dir string
}

var gooseMu sync.Mutex

// Run executes a goose command against db. Output that goose would print
// is routed through logger.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
		"dialect", src.Dialect,
	)

	var run func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error
	switch command {
	case CommandUp:
		run = goose.UpContext
	case CommandDown:
		run = goose.DownContext
	case CommandReset:
		run = goose.ResetContext
	case CommandStatus:
		run = goose.StatusContext
	case CommandVersion:
		run = goose.VersionContext
	default:
		return fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownCommand, command, Commands)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configure(src, log); err != nil {
		return err
	}

	start := time.Now()
	log.Info("starting migration command")

	if err := run(ctx, db, src.Dir); err != nil {
		log.Error("migration command failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	log.Info("migration command completed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Version reports the highest applied migration version, or 0 for a
// database that has never been migrated.
func Version(ctx context.Context, db *sql.DB, src Source) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configure(src, slog.Default()); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

func configure(src Source, log *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect %q: %w", src.Dialect, err)
	}
	return nil
}

// slogGooseLogger adapts goose's Printf/Fatalf logger to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting; Run reports the failure to
// its caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
