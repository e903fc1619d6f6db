package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/task-api/internal/platform/migrate"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	ConfigPath string
}

// newRootCommand creates the task-api command tree. Running it without a
// subcommand starts the server.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "task-api",
		Short:         "Task tracking API server",
		Long:          "Serves a JSON API for task records and pushes change notifications over websockets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a config file (default: ./config.yaml or $HOME/.task-api/config.yaml)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <" + strings.Join(migrate.Commands, "|") + ">",
		Short: "Manage the database schema",
		Long: `Run a schema migration command against the configured database.

Only the postgres and sqlite drivers have a schema to migrate.

Example:
  task-api migrate up
  task-api --config ./config.yaml migrate status`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: migrate.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), opts, args[0])
		},
	}
}

// runServe loads configuration, builds the application and serves until
// SIGINT or SIGTERM.
func runServe(ctx context.Context, opts *rootOptions) error {
	// Cancel on SIGINT or SIGTERM for graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration and set up logging
	cfg, err := loadAppConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	// Open the task store for the configured driver
	tasks, db, err := setupTaskStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Wire services around the store
	app, err := newApplication(cfg, logger, tasks, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// runMigrate executes a single migration command and exits.
func runMigrate(ctx context.Context, opts *rootOptions, command string) error {
	cfg, err := loadAppConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	return runMigrations(ctx, cfg, command, logger)
}
