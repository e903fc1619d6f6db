// Package sqlite implements store.TaskStore on a single SQLite file using
// mattn/go-sqlite3. Open configures the connection for WAL mode and applies
// the embedded goose migrations.
package sqlite
