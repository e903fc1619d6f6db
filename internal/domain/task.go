package domain

import (
	"fmt"
	"strings"
)

// Task is a persisted to-do record.
//
// ID is assigned by the store when the task is first created and never
// changes afterwards. Description is optional and stays nil when the client
// did not provide one.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Completed   bool
}

// NewTask creates a Task that has not been persisted yet. The returned task
// has a zero ID; the store assigns one on create.
func NewTask(title string, description *string, completed bool) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Completed:   completed,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the invariants every persisted task must satisfy.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle))
	}
	return nil
}

// Clone returns a deep copy of the task so callers can mutate it without
// touching the original.
func (t *Task) Clone() *Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}

// ValidateID checks that id can refer to a persisted task.
func ValidateID(id int64) error {
	if id <= 0 {
		return NewValidationError("id", "must be a positive integer", fmt.Errorf("%w: %w", ErrValidation, ErrInvalidID))
	}
	return nil
}
