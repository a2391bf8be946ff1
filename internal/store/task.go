package store

import (
	"context"
	"database/sql"

	"github.com/dstanley/taskforge-api/internal/domain"
)

// TaskStore defines persistence operations for tasks. Implementations
// validate input through the domain validators before touching the
// database, so callers can rely on a *domain.ValidationError for any
// shape violation and on ErrTaskNotFound for missing rows.
type TaskStore interface {
	// Create validates the creation input, persists a new task row, and
	// returns the stored task including its generated ID and timestamps.
	Create(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if no task has that ID.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List validates and normalizes the filter, then returns the matching
	// page of tasks plus the total count of rows matching the filter
	// ignoring pagination.
	List(ctx context.Context, in domain.ListTasksInput) ([]*domain.Task, int64, error)

	// Update validates the partial update, applies only the supplied
	// fields, refreshes updated_at, and returns the updated task.
	// Returns ErrTaskNotFound if no task has that ID.
	Update(ctx context.Context, id int64, in domain.UpdateTaskInput) (*domain.Task, error)

	// Delete hard-deletes the task with the given ID.
	// Returns ErrTaskNotFound if no task has that ID.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a store instance bound to the given transaction.
	// The original store is unchanged.
	WithTx(tx *sql.Tx) TaskStore
}
