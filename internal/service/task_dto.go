package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest is the client's payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,notblank"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// UpdateTaskRequest is the client's payload for replacing a task. The ID
// comes from the route, never from the body.
type UpdateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,notblank"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TaskResponse is the external view of a task, used for reads and as the
// payload of TaskAdded and TaskUpdated notifications.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report JSON field names so messages match what clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request's struct tags.
func (r CreateTaskRequest) Validate() error {
	return validate.Struct(r)
}

// Validate checks the request's struct tags.
func (r UpdateTaskRequest) Validate() error {
	return validate.Struct(r)
}

// NewTaskFromRequest maps a create request onto a new, unsaved task. It
// fails with a domain validation error when the title is blank.
func NewTaskFromRequest(req CreateTaskRequest) (*domain.Task, error) {
	return domain.NewTask(req.Title, cloneString(req.Description), req.Completed)
}

// ApplyUpdate overwrites every mutable field of task with the request's
// values. The ID is left untouched.
func ApplyUpdate(task *domain.Task, req UpdateTaskRequest) {
	task.Title = req.Title
	task.Description = cloneString(req.Description)
	task.Completed = req.Completed
}

// ToTaskResponse maps a domain task to its external view.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: cloneString(task.Description),
		Completed:   task.Completed,
	}
}

// ToTaskResponses maps a slice of tasks, always returning a non-nil slice.
func ToTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(t))
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
