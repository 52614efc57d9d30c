package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskroom/taskroom-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every operation that targets a task by ID also takes the requesting user's
// ID, and implementations must apply both in a single atomic query. There is
// deliberately no GetByID without an owner: a task is unreachable except
// through its owner, and an unowned match is indistinguishable from absence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// ListByUser returns all tasks owned by the given user,
	// ordered by creation time descending (newest first).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)

	// Update applies the non-nil fields of patch to the task with the given ID
	// owned by userID, and returns the updated task.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Complete marks the task as completed regardless of its current state and
	// returns the updated task. Completing an already-completed task succeeds.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Complete(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Delete permanently removes the task with the given ID owned by userID.
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}
