package service

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore mocks the store.TaskStore interface
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTaskNotifier mocks the TaskNotifier interface
type MockTaskNotifier struct {
	mock.Mock
}

func (m *MockTaskNotifier) NotifyTaskAdded(ctx context.Context, task TaskResponse) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskNotifier) NotifyTaskUpdated(ctx context.Context, task TaskResponse) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskNotifier) NotifyTaskDeleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
