package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations provide single-row atomicity only; concurrent writers to
// the same task follow last-write-wins.
type TaskStore interface {
	// List returns every stored task in whatever order the backend yields.
	// Returns an empty slice when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create persists a new task, ignoring any ID already set on it, and
	// populates task.ID with the identifier assigned by the store.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites the mutable fields of the task identified by task.ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID.
	// Reports false (with a nil error) if no such task existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
