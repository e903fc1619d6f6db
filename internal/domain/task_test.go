package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNewTask(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description *string
		completed   bool
		wantErr     error
	}{
		{
			name:  "title only",
			title: "Buy milk",
		},
		{
			name:        "all fields",
			title:       "Write report",
			description: strPtr("quarterly numbers"),
			completed:   true,
		},
		{
			name:    "empty title",
			title:   "",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			title:   "   \t\n",
			wantErr: ErrEmptyTitle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task, err := NewTask(tc.title, tc.description, tc.completed)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, task)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrValidation)

				var valErr *ValidationError
				require.True(t, errors.As(err, &valErr))
				assert.Equal(t, "title", valErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Zero(t, task.ID, "new tasks are not assigned an ID")
			assert.Equal(t, tc.title, task.Title)
			assert.Equal(t, tc.description, task.Description)
			assert.Equal(t, tc.completed, task.Completed)
		})
	}
}

func TestTask_Clone(t *testing.T) {
	original := &Task{ID: 3, Title: "original", Description: strPtr("desc"), Completed: true}

	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Description = "changed"
	clone.Title = "changed"

	assert.Equal(t, "desc", *original.Description)
	assert.Equal(t, "original", original.Title)
}

func TestTask_CloneNilDescription(t *testing.T) {
	original := &Task{ID: 1, Title: "no description"}
	clone := original.Clone()
	assert.Nil(t, clone.Description)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID(1))
	assert.NoError(t, ValidateID(42))

	for _, id := range []int64{0, -1, -100} {
		err := ValidateID(id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %d", id)
		assert.ErrorIs(t, err, ErrValidation, "id %d", id)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", nil)
	assert.Equal(t, "invalid title: is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation, "nil cause should unwrap to ErrValidation")
}
