package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskNotifier publishes task changes to connected clients.
type TaskNotifier interface {
	NotifyTaskAdded(ctx context.Context, task TaskResponse) error
	NotifyTaskUpdated(ctx context.Context, task TaskResponse) error
	NotifyTaskDeleted(ctx context.Context, id int64) error
}

// TaskService provides task-related operations.
type TaskService interface {
	// ListTasks returns every task. An empty store yields an empty slice.
	ListTasks(ctx context.Context) ([]TaskResponse, error)

	// GetTask returns the task with the given ID or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*TaskResponse, error)

	// AddTask validates and persists a new task, then publishes TaskAdded.
	// Returns ErrInvalidArgument for a blank title.
	AddTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)

	// UpdateTask replaces the task's fields, then publishes TaskUpdated.
	// Returns ErrInvalidArgument or ErrTaskNotFound.
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*TaskResponse, error)

	// DeleteTask removes the task, then publishes TaskDeleted.
	// Returns ErrTaskNotFound if the task does not exist. A false result
	// with a nil error means the task vanished between lookup and delete;
	// nothing is published in that case.
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks    store.TaskStore
	notifier TaskNotifier
	logger   *slog.Logger
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, notifier TaskNotifier, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if notifier == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "notifier cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]TaskResponse, error) {
	log := s.log(ctx)
	log.Info("retrieving all tasks")

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return ToTaskResponses(tasks), nil
}

// GetTask implements TaskService.GetTask.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*TaskResponse, error) {
	log := s.log(ctx)
	log.Info("retrieving task", slog.Int64("task_id", id))

	task, err := s.load(ctx, "get_task", id)
	if err != nil {
		return nil, err
	}

	resp := ToTaskResponse(task)
	return &resp, nil
}

// AddTask implements TaskService.AddTask.
func (s *taskServiceImpl) AddTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	log := s.log(ctx)
	log.Info("adding task", slog.String("title", req.Title))

	if err := req.Validate(); err != nil {
		log.Debug("rejected invalid create request", redact.ErrorAttr(err))
		return nil, invalidArgument(err)
	}

	task, err := NewTaskFromRequest(req)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("add_task", "failed to save task", err)
	}

	resp := ToTaskResponse(task)
	s.publish(ctx, events.TaskAdded, task.ID, func() error {
		return s.notifier.NotifyTaskAdded(ctx, resp)
	})

	log.Info("task added", slog.Int64("task_id", task.ID))
	return &resp, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	req UpdateTaskRequest,
) (*TaskResponse, error) {
	log := s.log(ctx)
	log.Info("updating task", slog.Int64("task_id", id))

	if err := req.Validate(); err != nil {
		log.Debug("rejected invalid update request", redact.ErrorAttr(err), slog.Int64("task_id", id))
		return nil, invalidArgument(err)
	}

	task, err := s.load(ctx, "update_task", id)
	if err != nil {
		return nil, err
	}

	ApplyUpdate(task, req)
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Warn("task disappeared before update", slog.Int64("task_id", id))
			return nil, notFound(id)
		}
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	resp := ToTaskResponse(task)
	s.publish(ctx, events.TaskUpdated, id, func() error {
		return s.notifier.NotifyTaskUpdated(ctx, resp)
	})

	log.Info("task updated", slog.Int64("task_id", id))
	return &resp, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (bool, error) {
	log := s.log(ctx)
	log.Info("deleting task", slog.Int64("task_id", id))

	if _, err := s.load(ctx, "delete_task", id); err != nil {
		return false, err
	}

	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return false, NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	if !deleted {
		log.Warn("task disappeared before delete", slog.Int64("task_id", id))
		return false, nil
	}

	s.publish(ctx, events.TaskDeleted, id, func() error {
		return s.notifier.NotifyTaskDeleted(ctx, id)
	})

	log.Info("task deleted", slog.Int64("task_id", id))
	return true, nil
}

// load validates id and fetches the task, translating store absence into
// a TaskNotFoundError.
func (s *taskServiceImpl) load(ctx context.Context, operation string, id int64) (*domain.Task, error) {
	if err := domain.ValidateID(id); err != nil {
		return nil, invalidArgument(err)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.log(ctx).Warn("task not found", slog.Int64("task_id", id))
			return nil, notFound(id)
		}
		return nil, NewTaskServiceError(operation, "failed to load task", err)
	}
	return task, nil
}

// publish runs send and logs a failure. The mutation has already been
// committed, so a failed notification never fails the request.
func (s *taskServiceImpl) publish(ctx context.Context, event string, id int64, send func() error) {
	if err := send(); err != nil {
		s.log(ctx).Warn("failed to publish task notification",
			slog.String("event", event),
			slog.Int64("task_id", id),
			redact.ErrorAttr(err))
	}
}
