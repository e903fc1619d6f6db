package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// EventNotifier implements service.TaskNotifier on top of an event emitter.
type EventNotifier struct {
	emitter events.EventEmitter
	logger  *slog.Logger
}

var _ service.TaskNotifier = (*EventNotifier)(nil)

// NewEventNotifier creates a notifier that publishes through emitter.
func NewEventNotifier(emitter events.EventEmitter, logger *slog.Logger) *EventNotifier {
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventNotifier{
		emitter: emitter,
		logger:  logger.With("component", "event_notifier"),
	}
}

// NotifyTaskAdded publishes a TaskAdded event carrying the new task.
func (n *EventNotifier) NotifyTaskAdded(ctx context.Context, task service.TaskResponse) error {
	return n.emit(ctx, events.TaskAdded, task)
}

// NotifyTaskUpdated publishes a TaskUpdated event carrying the stored task.
func (n *EventNotifier) NotifyTaskUpdated(ctx context.Context, task service.TaskResponse) error {
	return n.emit(ctx, events.TaskUpdated, task)
}

// NotifyTaskDeleted publishes a TaskDeleted event carrying only the ID.
func (n *EventNotifier) NotifyTaskDeleted(ctx context.Context, id int64) error {
	return n.emit(ctx, events.TaskDeleted, id)
}

func (n *EventNotifier) emit(ctx context.Context, name string, payload any) error {
	event, err := events.NewTaskEvent(name, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", name, err)
	}

	logger.FromContextOrDefault(ctx, n.logger).Debug("publishing task event",
		"event_id", event.ID,
		"event_name", name)

	if err := n.emitter.EmitEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to emit %s event: %w", name, err)
	}
	return nil
}

// NopNotifier discards every notification.
type NopNotifier struct{}

var _ service.TaskNotifier = NopNotifier{}

func (NopNotifier) NotifyTaskAdded(context.Context, service.TaskResponse) error   { return nil }
func (NopNotifier) NotifyTaskUpdated(context.Context, service.TaskResponse) error { return nil }
func (NopNotifier) NotifyTaskDeleted(context.Context, int64) error                { return nil }
