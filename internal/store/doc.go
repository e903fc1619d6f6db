// Package store defines the persistence contract for tasks.
// The interfaces here keep the service layer independent of the concrete
// database: PostgreSQL, SQLite and an in-memory implementation all satisfy
// TaskStore.
package store
