package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dstanley/taskforge-api/internal/domain"
	"github.com/dstanley/taskforge-api/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the database named by DATABASE_URL and skips the
// test when the variable is unset. The schema is expected to be migrated.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))

	// Each test starts from an empty table.
	_, err = db.ExecContext(ctx, "DELETE FROM tasks")
	require.NoError(t, err)

	return db
}

func validCreateInput(title string) domain.CreateTaskInput {
	return domain.CreateTaskInput{
		Title:       title,
		Description: "integration test task",
		DueDate:     time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
		Status:      "pending",
	}
}

func TestTaskStoreCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput("Buy groceries"))
	require.NoError(t, err)
	assert.NotZero(t, created.TaskID)
	assert.Equal(t, "Buy groceries", created.Title)
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := s.GetByID(ctx, created.TaskID)
	require.NoError(t, err)
	assert.Equal(t, created.TaskID, fetched.TaskID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Status, fetched.Status)
	assert.WithinDuration(t, created.DueDate, fetched.DueDate, time.Millisecond)
}

func TestTaskStoreGetByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)

	_, err := s.GetByID(context.Background(), 9999)
	assert.True(t, errors.Is(err, store.ErrTaskNotFound))
}

func TestTaskStoreListPagination(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, validCreateInput(fmt.Sprintf("Task %d", i)))
		require.NoError(t, err)
	}

	page, limit := 1, 2
	tasks, total, err := s.List(ctx, domain.ListTasksInput{Page: &page, Limit: &limit})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.EqualValues(t, 5, total)

	// A page beyond the data keeps the total and returns no rows.
	page = 10
	tasks, total, err = s.List(ctx, domain.ListTasksInput{Page: &page, Limit: &limit})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.EqualValues(t, 5, total)
}

func TestTaskStoreListFilters(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	in := validCreateInput("Water the plants")
	_, err := s.Create(ctx, in)
	require.NoError(t, err)

	in = validCreateInput("File taxes")
	in.Status = "completed"
	_, err = s.Create(ctx, in)
	require.NoError(t, err)

	tasks, total, err := s.List(ctx, domain.ListTasksInput{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "File taxes", tasks[0].Title)

	// Search matches title or description, case-insensitively.
	tasks, _, err = s.List(ctx, domain.ListTasksInput{Search: "PLANTS"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Water the plants", tasks[0].Title)
}

func TestTaskStoreUpdate(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput("Draft report"))
	require.NoError(t, err)

	status := "in-progress"
	updated, err := s.Update(ctx, created.TaskID, domain.UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = s.Update(ctx, 9999, domain.UpdateTaskInput{Status: &status})
	assert.True(t, errors.Is(err, store.ErrTaskNotFound))
}

func TestTaskStoreDelete(t *testing.T) {
	db := openTestDB(t)
	s := NewPostgresTaskStore(db, nil)
	ctx := context.Background()

	created, err := s.Create(ctx, validCreateInput("Disposable"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.TaskID))

	_, err = s.GetByID(ctx, created.TaskID)
	assert.True(t, errors.Is(err, store.ErrTaskNotFound))

	// Deleting again keeps yielding not found.
	err = s.Delete(ctx, created.TaskID)
	assert.True(t, errors.Is(err, store.ErrTaskNotFound))
}
