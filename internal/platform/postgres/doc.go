// Package postgres implements store.TaskStore on PostgreSQL through the pgx
// database/sql driver. Schema migrations are embedded and applied with goose.
package postgres
