package domain

import (
	"fmt"
	"time"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values. The set is closed: the database enum,
// the validators, and the list filter all share it.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid status in declaration order.
// Used to build validation messages and the status filter.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// IsValid reports whether the status is a member of the closed enumeration.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// statusList renders the enumeration for validation messages,
// e.g. "pending, in-progress, completed".
func statusList() string {
	out := ""
	for i, s := range TaskStatuses {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}

// Task is the persisted to-do entity. TaskID is assigned by the store and
// immutable; CreatedAt and UpdatedAt are system-managed and never
// client-supplied.
type Task struct {
	TaskID      int64      `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SortField identifies a column tasks can be ordered by.
type SortField string

// Columns the list operation may sort on. The set is a whitelist: the
// query builder interpolates the column name and must never see a value
// outside it.
const (
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "due_date"
	SortByStatus    SortField = "status"
	SortByCreatedAt SortField = "created_at"
)

// SortOrder is the direction applied to the sort field.
type SortOrder string

// Valid sort directions.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// List pagination and sorting defaults. due_date ascending is the canonical
// default ordering for task lists.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortBy    = SortByDueDate
	DefaultSortOrder = SortAsc

	// MaxTitleLen is the maximum title length after trimming.
	MaxTitleLen = 100

	// MaxSearchLen bounds the free-text search term.
	MaxSearchLen = 100
)

// TaskFilter is the normalized output of ListTasksInput.Validate: defaults
// applied, bounds enforced, timestamps parsed. Zero-value optional fields
// mean "no constraint".
type TaskFilter struct {
	Page         int
	Limit        int
	SortBy       SortField
	SortOrder    SortOrder
	Status       *TaskStatus
	Search       string
	DueDateStart *time.Time
	DueDateEnd   *time.Time
}

// Offset returns the row offset implied by the page and limit.
func (f TaskFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// NewTask is the normalized output of CreateTaskInput.Validate: strings
// trimmed, due date parsed, status typed. It carries no identity or
// timestamps; the store assigns those on insert.
type NewTask struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      TaskStatus
}

// TaskUpdate is the normalized output of UpdateTaskInput.Validate.
// Nil fields are left untouched by the update.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *TaskStatus
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil && u.Status == nil
}

// String implements fmt.Stringer for log output.
func (t *Task) String() string {
	return fmt.Sprintf("Task(%d %q status=%s due=%s)",
		t.TaskID, t.Title, t.Status, t.DueDate.Format(time.RFC3339))
}
