package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskroom/taskroom-api/internal/domain"
	"github.com/taskroom/taskroom-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// The default implementation keeps tasks in an in-memory map and applies the
// same owner-scoped semantics as the real store: a task owned by another
// user is reported as not found.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, task *domain.Task) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	UpdateFn     func(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	CompleteFn   func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	DeleteFn     func(ctx context.Context, userID, taskID uuid.UUID) error

	// Data for default implementation
	Tasks map[uuid.UUID]*domain.Task
	Err   error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.Err != nil {
		return m.Err
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	tasks := make([]domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// get applies the owner-scoped lookup shared by the mutation methods.
func (m *MockTaskStore) get(userID, taskID uuid.UUID) (*domain.Task, error) {
	task, exists := m.Tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, taskID, patch)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	task, err := m.get(userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = time.Now().UTC()

	copied := *task
	return &copied, nil
}

// Complete implements the TaskStore interface
func (m *MockTaskStore) Complete(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, userID, taskID)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	task, err := m.get(userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = true
	task.UpdatedAt = time.Now().UTC()

	copied := *task
	return &copied, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}

	if m.Err != nil {
		return m.Err
	}

	if _, err := m.get(userID, taskID); err != nil {
		return err
	}

	delete(m.Tasks, taskID)
	return nil
}
