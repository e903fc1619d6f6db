package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*events.TaskEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.TaskEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) received() []*events.TaskEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*events.TaskEvent(nil), h.events...)
}

func newTestNotifier(t *testing.T, handler events.EventHandler) *EventNotifier {
	t.Helper()
	log, _ := logger.NewTestLogger()
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(handler)
	return NewEventNotifier(emitter, log)
}

func TestEventNotifier_Payloads(t *testing.T) {
	handler := &recordingHandler{}
	n := newTestNotifier(t, handler)
	ctx := context.Background()

	desc := "bread"
	task := service.TaskResponse{ID: 7, Title: "Buy milk", Description: &desc}

	require.NoError(t, n.NotifyTaskAdded(ctx, task))
	task.Completed = true
	require.NoError(t, n.NotifyTaskUpdated(ctx, task))
	require.NoError(t, n.NotifyTaskDeleted(ctx, 7))

	got := handler.received()
	require.Len(t, got, 3)

	assert.Equal(t, events.TaskAdded, got[0].Name)
	var added service.TaskResponse
	require.NoError(t, got[0].UnmarshalPayload(&added))
	assert.Equal(t, int64(7), added.ID)
	assert.False(t, added.Completed)
	require.NotNil(t, added.Description)
	assert.Equal(t, "bread", *added.Description)

	assert.Equal(t, events.TaskUpdated, got[1].Name)
	var updated service.TaskResponse
	require.NoError(t, got[1].UnmarshalPayload(&updated))
	assert.True(t, updated.Completed)

	assert.Equal(t, events.TaskDeleted, got[2].Name)
	assert.JSONEq(t, `7`, string(got[2].Payload))
}

func TestEventNotifier_PropagatesHandlerError(t *testing.T) {
	handlerErr := errors.New("hub unavailable")
	n := newTestNotifier(t, &recordingHandler{err: handlerErr})

	err := n.NotifyTaskDeleted(context.Background(), 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, handlerErr)
	assert.Contains(t, err.Error(), events.TaskDeleted)
}

func TestNewEventNotifier_PanicsOnNilEmitter(t *testing.T) {
	assert.Panics(t, func() { NewEventNotifier(nil, nil) })
}

func TestNopNotifier(t *testing.T) {
	var n service.TaskNotifier = NopNotifier{}
	ctx := context.Background()

	assert.NoError(t, n.NotifyTaskAdded(ctx, service.TaskResponse{ID: 1}))
	assert.NoError(t, n.NotifyTaskUpdated(ctx, service.TaskResponse{ID: 1}))
	assert.NoError(t, n.NotifyTaskDeleted(ctx, 1))
}
