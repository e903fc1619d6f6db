package api

import (
	"context"

	"github.com/phrazzld/task-api/internal/service"
)

// mockTaskService implements service.TaskService with overridable funcs.
type mockTaskService struct {
	ListTasksFn  func(ctx context.Context) ([]service.TaskResponse, error)
	GetTaskFn    func(ctx context.Context, id int64) (*service.TaskResponse, error)
	AddTaskFn    func(ctx context.Context, req service.CreateTaskRequest) (*service.TaskResponse, error)
	UpdateTaskFn func(ctx context.Context, id int64, req service.UpdateTaskRequest) (*service.TaskResponse, error)
	DeleteTaskFn func(ctx context.Context, id int64) (bool, error)
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) ListTasks(ctx context.Context) ([]service.TaskResponse, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []service.TaskResponse{}, nil
}

func (m *mockTaskService) GetTask(ctx context.Context, id int64) (*service.TaskResponse, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, &service.TaskNotFoundError{ID: id}
}

func (m *mockTaskService) AddTask(ctx context.Context, req service.CreateTaskRequest) (*service.TaskResponse, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, req)
	}
	return &service.TaskResponse{ID: 1, Title: req.Title, Description: req.Description, Completed: req.Completed}, nil
}

func (m *mockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	req service.UpdateTaskRequest,
) (*service.TaskResponse, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, req)
	}
	return &service.TaskResponse{ID: id, Title: req.Title, Description: req.Description, Completed: req.Completed}, nil
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return true, nil
}
