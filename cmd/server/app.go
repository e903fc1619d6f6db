package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/notify"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory driver.
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService

	eventEmitter *events.InMemoryEventEmitter
	hub          *notify.Hub
}

// newApplication wires the services around an already opened task store.
// The application takes ownership of db.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	tasks store.TaskStore,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: tasks,
	}

	// Push channel: service -> notifier -> emitter -> hub -> websocket clients
	app.hub = notify.NewHub(cfg.Notifier, logger)
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(app.hub)
	notifier := notify.NewEventNotifier(app.eventEmitter, logger)

	// Initialize task service
	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, notifier, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"database_driver", cfg.Database.Driver)
	return app, nil
}

// Run serves HTTP until ctx is cancelled and then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
