package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dstanley/taskforge-api/internal/domain"
	"github.com/dstanley/taskforge-api/internal/platform/logger"
	"github.com/dstanley/taskforge-api/internal/store"
)

// taskColumns is the column list every task query selects, in scan order.
const taskColumns = "task_id, title, description, due_date, status, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
		now:    s.now,
	}
}

// WithClock returns a copy of the store that uses the given clock for
// validation and timestamps. Intended for tests.
func (s *PostgresTaskStore) WithClock(now func() time.Time) *PostgresTaskStore {
	return &PostgresTaskStore{
		db:     s.db,
		logger: s.logger,
		now:    now,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TaskStore.Create. The input is validated first;
// on success the new row is inserted with created_at == updated_at and the
// stored task, including its generated ID, is returned.
func (s *PostgresTaskStore) Create(
	ctx context.Context,
	in domain.CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := in.Validate(s.now())
	if err != nil {
		log.Debug("task creation input failed validation",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (title, description, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	now := s.now()
	row := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		now,
		now,
	)

	created, err := scanTask(row)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("title", task.Title),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to insert task: %w", MapError(err))
	}

	log.Debug("task created",
		slog.Int64("task_id", created.TaskID),
		slog.String("title", created.Title))
	return created, nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if no task has the given ID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to query task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query task: %w", MapError(err))
	}

	return task, nil
}

// buildListFilter renders the WHERE clause for a normalized filter.
// Returns the clause (empty when unfiltered) and the bind arguments.
func buildListFilter(filter domain.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	switch {
	case filter.DueDateStart != nil && filter.DueDateEnd != nil:
		args = append(args, *filter.DueDateStart)
		start := len(args)
		args = append(args, *filter.DueDateEnd)
		conds = append(conds, fmt.Sprintf("due_date BETWEEN $%d AND $%d", start, len(args)))
	case filter.DueDateStart != nil:
		args = append(args, *filter.DueDateStart)
		conds = append(conds, fmt.Sprintf("due_date >= $%d", len(args)))
	case filter.DueDateEnd != nil:
		args = append(args, *filter.DueDateEnd)
		conds = append(conds, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List implements store.TaskStore.List. The filter is validated and
// normalized first; the returned total counts all rows matching the filter
// regardless of pagination.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	in domain.ListTasksInput,
) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	filter, err := in.Validate()
	if err != nil {
		log.Debug("list query failed validation",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	where, args := buildListFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count tasks: %w", MapError(err))
	}

	// SortBy and SortOrder come from closed whitelists in the validator,
	// so interpolating them is safe.
	pageQuery := fmt.Sprintf(
		`SELECT %s FROM tasks%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		taskColumns,
		where,
		filter.SortBy,
		filter.SortOrder,
		len(args)+1,
		len(args)+2,
	)
	pageArgs := append(args, filter.Limit, filter.Offset())

	rows, err := s.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to query tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0, filter.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, 0, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("error iterating task rows: %w", err)
	}

	log.Debug("tasks listed",
		slog.Int("count", len(tasks)),
		slog.Int64("total", total),
		slog.Int("page", filter.Page),
		slog.Int("limit", filter.Limit))
	return tasks, total, nil
}

// Update implements store.TaskStore.Update. Only the supplied fields are
// written; updated_at is always refreshed. Returns store.ErrTaskNotFound if
// no task has the given ID.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id int64,
	in domain.UpdateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	update, err := in.Validate(s.now())
	if err != nil {
		log.Debug("task update input failed validation",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	var set []string
	var args []any

	if update.Title != nil {
		args = append(args, *update.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.DueDate != nil {
		args = append(args, *update.DueDate)
		set = append(set, fmt.Sprintf("due_date = $%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}

	args = append(args, s.now())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE task_id = $%d RETURNING %s`,
		strings.Join(set, ", "),
		len(args),
		taskColumns,
	)

	updated, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update task: %w", MapError(err))
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// Delete implements store.TaskStore.Delete. The delete is a hard delete.
// Returns store.ErrTaskNotFound if no task has the given ID.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete task: %w", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
		}
		return err
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}
