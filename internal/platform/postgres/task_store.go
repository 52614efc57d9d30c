package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskroom/taskroom-api/internal/domain"
	"github.com/taskroom/taskroom-api/internal/platform/logger"
	"github.com/taskroom/taskroom-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
//
// Every query that targets a task by ID also filters by user_id in the same
// statement. Ownership is never checked in application code after a fetch;
// the store query itself encodes the constraint atomically.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, user_id, title, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			"task_id", task.ID,
			"user_id", task.UserID,
			"error", err)
		return fmt.Errorf("failed to insert task: %w", MapError(err))
	}

	return nil
}

// ListByUser implements store.TaskStore.ListByUser
// Tasks are returned newest first. A user with no tasks gets an empty slice,
// not nil, so the handler serializes it as [] rather than null.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list tasks",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to query tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task row",
				"user_id", userID,
				"error", err)
			return nil, fmt.Errorf("failed to scan task: %w", MapError(err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", MapError(err))
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// The patch is applied in a single owner-scoped statement: COALESCE keeps
// columns whose patch field is nil untouched, so partial updates never
// round-trip through a read.
// Returns store.ErrTaskNotFound if no task matches (id, user_id).
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    completed = COALESCE($4, completed),
		    updated_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, completed, created_at, updated_at
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query,
		taskID,
		userID,
		patch.Title,
		patch.Completed,
		time.Now().UTC(),
	).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			"task_id", taskID,
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to update task: %w", MapError(err))
	}

	return &task, nil
}

// Complete implements store.TaskStore.Complete
// Sets completed unconditionally, so completing a completed task is a no-op
// that still succeeds.
// Returns store.ErrTaskNotFound if no task matches (id, user_id).
func (s *PostgresTaskStore) Complete(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET completed = TRUE,
		    updated_at = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, completed, created_at, updated_at
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query,
		taskID,
		userID,
		time.Now().UTC(),
	).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to complete task",
			"task_id", taskID,
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to complete task: %w", MapError(err))
	}

	return &task, nil
}

// Delete implements store.TaskStore.Delete
// Hard delete; there is no tombstone to resurrect.
// Returns store.ErrTaskNotFound if no task matches (id, user_id).
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		log.Error("failed to delete task",
			"task_id", taskID,
			"user_id", userID,
			"error", err)
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	return nil
}
