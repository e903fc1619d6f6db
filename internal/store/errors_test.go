package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generic not found", ErrNotFound, true},
		{"task not found", ErrTaskNotFound, true},
		{"wrapped task not found", fmt.Errorf("lookup: %w", ErrTaskNotFound), true},
		{"store error wrapping not found", NewStoreError("task", "get", "missing", ErrTaskNotFound), true},
		{"invalid entity", ErrInvalidEntity, false},
		{"unrelated", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("task", "create", "failed to insert task", cause)

	assert.Equal(t, "create operation on task failed: failed to insert task: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("task", "list", "scan failed", nil)
	assert.Equal(t, "list operation on task failed: scan failed", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestErrTaskNotFoundWrapsErrNotFound(t *testing.T) {
	assert.ErrorIs(t, ErrTaskNotFound, ErrNotFound)
	assert.Equal(t, "entity not found: task", ErrTaskNotFound.Error())
}
