package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Sentinel errors returned by TaskService. Callers check them with errors.Is;
// the API layer maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates that no task exists with the requested ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidArgument indicates a malformed request such as a blank title
	// or a non-positive ID. It wraps domain.ErrValidation.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", domain.ErrValidation)
)

// TaskNotFoundError reports the ID that could not be found.
// It matches ErrTaskNotFound with errors.Is.
type TaskNotFoundError struct {
	ID int64
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %d was not found.", e.ID)
}

// Is reports whether target is ErrTaskNotFound.
func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

func notFound(id int64) error {
	return &TaskNotFoundError{ID: id}
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "add_task", "delete_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Validation failures are returned as ErrInvalidArgument and everything
// else is wrapped. Store absence is handled by the caller, which knows the
// ID to report.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrInvalidArgument) {
		return err
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrInvalidEntity) {
		return invalidArgument(err)
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
