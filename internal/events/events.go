package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names published for task changes.
const (
	TaskAdded   = "TaskAdded"
	TaskUpdated = "TaskUpdated"
	TaskDeleted = "TaskDeleted"
)

// TaskEvent describes a single change to a task.
type TaskEvent struct {
	// ID uniquely identifies this event occurrence.
	ID uuid.UUID `json:"id"`

	// Name is one of TaskAdded, TaskUpdated or TaskDeleted.
	Name string `json:"event"`

	// Payload is the JSON-encoded task view, or the task id for deletions.
	Payload json.RawMessage `json:"payload"`

	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskEvent creates a TaskEvent with a fresh id and the JSON encoding of payload.
func NewTaskEvent(name string, payload any) (*TaskEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskEvent{
		ID:        uuid.New(),
		Name:      name,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler is implemented by components that react to task events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter publishes task events to interested handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
