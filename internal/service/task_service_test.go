package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newServiceWithMocks(t *testing.T) (TaskService, *MockTaskStore, *MockTaskNotifier) {
	t.Helper()
	tasks := &MockTaskStore{}
	notifier := &MockTaskNotifier{}
	l, _ := logger.NewTestLogger()

	svc, err := NewTaskService(tasks, notifier, l)
	require.NoError(t, err)

	t.Cleanup(func() {
		tasks.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})
	return svc, tasks, notifier
}

func newServiceWithMemoryStore(t *testing.T) (TaskService, *memory.TaskStore, *MockTaskNotifier) {
	t.Helper()
	l, _ := logger.NewTestLogger()
	tasks := memory.NewTaskStore(l)
	notifier := &MockTaskNotifier{}

	svc, err := NewTaskService(tasks, notifier, l)
	require.NoError(t, err)
	return svc, tasks, notifier
}

func TestNewTaskService(t *testing.T) {
	_, err := NewTaskService(nil, &MockTaskNotifier{}, nil)
	var serviceErr *TaskServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "create_service", serviceErr.Operation)

	_, err = NewTaskService(&MockTaskStore{}, nil, nil)
	assert.Error(t, err)

	svc, err := NewTaskService(&MockTaskStore{}, &MockTaskNotifier{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		svc, _, _ := newServiceWithMemoryStore(t)

		tasks, err := svc.ListTasks(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, tasks, _ := newServiceWithMocks(t)
		tasks.On("List", ctx).Return(nil, errors.New("connection refused"))

		_, err := svc.ListTasks(ctx)
		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "list_tasks", serviceErr.Operation)
		assert.False(t, errors.Is(err, ErrTaskNotFound))
	})
}

func TestTaskService_AddTask(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and notifies", func(t *testing.T) {
		svc, tasks, notifier := newServiceWithMocks(t)
		tasks.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Task).ID = 17 }).
			Return(nil)
		expected := TaskResponse{ID: 17, Title: "Buy milk", Description: strPtr("2L")}
		notifier.On("NotifyTaskAdded", ctx, expected).Return(nil).Once()

		resp, err := svc.AddTask(ctx, CreateTaskRequest{Title: "Buy milk", Description: strPtr("2L")})
		require.NoError(t, err)
		assert.Equal(t, expected, *resp)
	})

	t.Run("blank title is rejected without persistence", func(t *testing.T) {
		svc, tasks, notifier := newServiceWithMocks(t)

		for _, title := range []string{"", "   "} {
			_, err := svc.AddTask(ctx, CreateTaskRequest{Title: title})
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}

		tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "NotifyTaskAdded", mock.Anything, mock.Anything)
	})

	t.Run("store constraint violation is an invalid argument", func(t *testing.T) {
		svc, tasks, _ := newServiceWithMocks(t)
		tasks.On("Create", ctx, mock.Anything).Return(store.ErrInvalidEntity)

		_, err := svc.AddTask(ctx, CreateTaskRequest{Title: "ok"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("assigns fresh ids", func(t *testing.T) {
		svc, _, notifier := newServiceWithMemoryStore(t)
		notifier.On("NotifyTaskAdded", ctx, mock.Anything).Return(nil)

		seen := make(map[int64]bool)
		for i := 0; i < 5; i++ {
			resp, err := svc.AddTask(ctx, CreateTaskRequest{Title: "task"})
			require.NoError(t, err)
			assert.False(t, seen[resp.ID])
			seen[resp.ID] = true
		}
		notifier.AssertNumberOfCalls(t, "NotifyTaskAdded", 5)
	})

	t.Run("notification failure does not fail the mutation", func(t *testing.T) {
		l, logs := logger.NewTestLogger()
		tasks := memory.NewTaskStore(l)
		notifier := &MockTaskNotifier{}
		notifier.On("NotifyTaskAdded", ctx, mock.Anything).Return(errors.New("hub closed"))
		svc, err := NewTaskService(tasks, notifier, l)
		require.NoError(t, err)

		resp, err := svc.AddTask(ctx, CreateTaskRequest{Title: "still saved"})
		require.NoError(t, err)

		stored, err := tasks.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "still saved", stored.Title)

		warnings := logs.EntriesWithMessage("failed to publish task notification")
		require.Len(t, warnings, 1)
		assert.Equal(t, "WARN", warnings[0]["level"])
		assert.Equal(t, "TaskAdded", warnings[0]["event"])
	})
}

func TestTaskService_GetTask(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newServiceWithMemoryStore(t)
	notifier.On("NotifyTaskAdded", ctx, mock.Anything).Return(nil)

	created, err := svc.AddTask(ctx, CreateTaskRequest{Title: "read me"})
	require.NoError(t, err)

	first, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	second, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, created, first)

	_, err = svc.GetTask(ctx, 999)
	require.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, "Task with ID 999 was not found.", err.Error())

	_, err = svc.GetTask(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and keeps id", func(t *testing.T) {
		svc, _, notifier := newServiceWithMemoryStore(t)
		notifier.On("NotifyTaskAdded", ctx, mock.Anything).Return(nil)

		created, err := svc.AddTask(ctx, CreateTaskRequest{Title: "draft", Description: strPtr("notes")})
		require.NoError(t, err)

		expected := TaskResponse{ID: created.ID, Title: "final", Completed: true}
		notifier.On("NotifyTaskUpdated", ctx, expected).Return(nil).Once()

		updated, err := svc.UpdateTask(ctx, created.ID, UpdateTaskRequest{Title: "final", Completed: true})
		require.NoError(t, err)
		assert.Equal(t, expected, *updated)

		got, err := svc.GetTask(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, *got)
		notifier.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _, notifier := newServiceWithMemoryStore(t)

		_, err := svc.UpdateTask(ctx, 5, UpdateTaskRequest{Title: "x"})
		assert.ErrorIs(t, err, ErrTaskNotFound)
		notifier.AssertNotCalled(t, "NotifyTaskUpdated", mock.Anything, mock.Anything)
	})

	t.Run("blank title checked before lookup", func(t *testing.T) {
		svc, tasks, _ := newServiceWithMocks(t)

		_, err := svc.UpdateTask(ctx, 5, UpdateTaskRequest{Title: " "})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		tasks.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("task removed between lookup and write", func(t *testing.T) {
		svc, tasks, _ := newServiceWithMocks(t)
		tasks.On("GetByID", ctx, int64(3)).Return(&domain.Task{ID: 3, Title: "old"}, nil)
		tasks.On("Update", ctx, mock.Anything).Return(store.ErrTaskNotFound)

		_, err := svc.UpdateTask(ctx, 3, UpdateTaskRequest{Title: "new"})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("double delete", func(t *testing.T) {
		svc, _, notifier := newServiceWithMemoryStore(t)
		notifier.On("NotifyTaskAdded", ctx, mock.Anything).Return(nil)

		created, err := svc.AddTask(ctx, CreateTaskRequest{Title: "short lived"})
		require.NoError(t, err)
		notifier.On("NotifyTaskDeleted", ctx, created.ID).Return(nil).Once()

		deleted, err := svc.DeleteTask(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = svc.DeleteTask(ctx, created.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.False(t, deleted)

		notifier.AssertNumberOfCalls(t, "NotifyTaskDeleted", 1)
	})

	t.Run("vanished before delete is not notified", func(t *testing.T) {
		svc, tasks, notifier := newServiceWithMocks(t)
		tasks.On("GetByID", ctx, int64(4)).Return(&domain.Task{ID: 4, Title: "racy"}, nil)
		tasks.On("Delete", ctx, int64(4)).Return(false, nil)

		deleted, err := svc.DeleteTask(ctx, 4)
		require.NoError(t, err)
		assert.False(t, deleted)
		notifier.AssertNotCalled(t, "NotifyTaskDeleted", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, tasks, _ := newServiceWithMocks(t)
		tasks.On("GetByID", ctx, int64(4)).Return(&domain.Task{ID: 4, Title: "x"}, nil)
		tasks.On("Delete", ctx, int64(4)).Return(false, errors.New("disk full"))

		_, err := svc.DeleteTask(ctx, 4)
		var serviceErr *TaskServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "delete_task", serviceErr.Operation)
	})
}

func TestNewTaskServiceError(t *testing.T) {
	assert.NoError(t, NewTaskServiceError("op", "msg", nil))

	err := NewTaskServiceError("op", "msg", domain.NewValidationError("title", "is required", domain.ErrValidation))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = NewTaskServiceError("op", "msg", invalidArgument(errors.New("bad")))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = NewTaskServiceError("op", "msg", errors.New("boom"))
	assert.Equal(t, "task service op failed: msg: boom", err.Error())
}
