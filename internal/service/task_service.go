package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dstanley/taskforge-api/internal/domain"
	"github.com/dstanley/taskforge-api/internal/platform/logger"
	"github.com/dstanley/taskforge-api/internal/store"
)

// TaskService provides the task operations exposed to the HTTP layer.
// Create, update, and delete are transactional; reads are not.
type TaskService interface {
	// CreateTask validates and persists a new task inside a transaction.
	CreateTask(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns the page of tasks matching the filter and the total
	// count of matching rows ignoring pagination.
	ListTasks(ctx context.Context, in domain.ListTasksInput) ([]*domain.Task, int64, error)

	// UpdateTask applies a partial update inside a transaction.
	UpdateTask(ctx context.Context, id int64, in domain.UpdateTaskInput) (*domain.Task, error)

	// DeleteTask removes a task inside a transaction.
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService bound to the given store and
// database handle. The database handle owns the transaction boundary for
// mutating operations.
func NewTaskService(
	taskStore store.TaskStore,
	db *sql.DB,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// asClientError re-shapes an unexpected error as a client-facing invalid
// input error. Typed errors — not found and validation — pass through
// unchanged so the HTTP layer maps them to their own status codes.
func asClientError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrInvalidEntity) {
		return err
	}
	return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	in domain.CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("creating task", slog.String("title", in.Title))

	var created *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		created, txErr = s.taskStore.WithTx(tx).Create(ctx, in)
		return txErr
	})
	if err != nil {
		log.Warn("failed to create task", slog.String("error", err.Error()))
		return nil, asClientError(err)
	}

	return created, nil
}

// GetTask implements TaskService.GetTask. Reads bypass the transaction
// boundary; a not-found error propagates unchanged.
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("getting task", slog.Int64("task_id", id))

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		log.Warn("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	in domain.ListTasksInput,
) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("listing tasks")

	tasks, total, err := s.taskStore.List(ctx, in)
	if err != nil {
		log.Warn("failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, asClientError(err)
	}
	return tasks, total, nil
}

// UpdateTask implements TaskService.UpdateTask. A not-found error from the
// store passes through the transaction boundary unchanged; unexpected
// errors are surfaced as-is after rollback.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	in domain.UpdateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("updating task", slog.Int64("task_id", id))

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		updated, txErr = s.taskStore.WithTx(tx).Update(ctx, id, in)
		return txErr
	})
	if err != nil {
		log.Warn("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("deleting task", slog.Int64("task_id", id))

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		log.Warn("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return err
	}

	return nil
}
