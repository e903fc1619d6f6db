package postgres

import (
	"embed"

	"github.com/phrazzld/task-api/internal/platform/migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the embedded PostgreSQL schema.
var Migrations = migrate.Source{
	Dialect: "postgres",
	FS:      migrationFiles,
	Dir:     "migrations",
}
