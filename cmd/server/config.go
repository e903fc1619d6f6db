package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and the config file at path, or the default locations when
// path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Debug("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	return cfg, nil
}
