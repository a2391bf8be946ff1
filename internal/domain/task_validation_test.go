package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestCreateTaskInputValidate(t *testing.T) {
	future := testNow.Add(24 * time.Hour).Format(time.RFC3339)
	past := testNow.Add(-24 * time.Hour).Format(time.RFC3339)

	valid := CreateTaskInput{
		Title:       "Test Task",
		Description: "Test Description",
		DueDate:     future,
		Status:      "completed",
	}

	t.Run("Valid", func(t *testing.T) {
		task, err := valid.Validate(testNow)
		require.NoError(t, err)
		assert.Equal(t, "Test Task", task.Title)
		assert.Equal(t, "Test Description", task.Description)
		assert.Equal(t, TaskStatusCompleted, task.Status)
		assert.True(t, task.DueDate.After(testNow))
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		in := valid
		in.Title = "  padded title  "
		in.Description = "\tpadded description\n"

		task, err := in.Validate(testNow)
		require.NoError(t, err)
		assert.Equal(t, "padded title", task.Title)
		assert.Equal(t, "padded description", task.Description)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		in := valid
		in.Title = ""

		_, err := in.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "title")
	})

	t.Run("WhitespaceOnlyTitle", func(t *testing.T) {
		in := valid
		in.Title = "   "

		_, err := in.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "title")
	})

	t.Run("TitleTooLong", func(t *testing.T) {
		in := valid
		in.Title = strings.Repeat("a", 101)

		_, err := in.Validate(testNow)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Title cannot be longer than 100 characters", verr.Errors[0].Message)
	})

	t.Run("TitleAtLimit", func(t *testing.T) {
		in := valid
		in.Title = strings.Repeat("a", 100)

		_, err := in.Validate(testNow)
		assert.NoError(t, err)
	})

	t.Run("MultibyteTitleCountedInCharacters", func(t *testing.T) {
		// 100 characters but 200 bytes; the limit is characters.
		in := valid
		in.Title = strings.Repeat("å", 100)

		_, err := in.Validate(testNow)
		assert.NoError(t, err)

		in.Title = strings.Repeat("å", 101)
		_, err = in.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "title")
	})

	t.Run("PastDueDate", func(t *testing.T) {
		in := valid
		in.DueDate = past

		_, err := in.Validate(testNow)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, "due_date", verr.Errors[0].Field)
		assert.Equal(t, "Due date must be in the future", verr.Errors[0].Message)
	})

	t.Run("UnparseableDueDate", func(t *testing.T) {
		in := valid
		in.DueDate = "not-a-date"

		_, err := in.Validate(testNow)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Due date must be a valid date", verr.Errors[0].Message)
	})

	t.Run("DateOnlyFormat", func(t *testing.T) {
		in := valid
		in.DueDate = "2025-12-31"

		_, err := in.Validate(testNow)
		assert.NoError(t, err)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		in := valid
		in.Status = "done"

		_, err := in.Validate(testNow)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t,
			"Status must be one of: pending, in-progress, completed",
			verr.Errors[0].Message)
	})

	t.Run("CollectsAllViolations", func(t *testing.T) {
		_, err := CreateTaskInput{}.Validate(testNow)
		require.Error(t, err)

		fields := fieldNames(t, err)
		assert.Equal(t, []string{"title", "description", "due_date", "status"}, fields)
	})

	t.Run("MatchesErrValidation", func(t *testing.T) {
		_, err := CreateTaskInput{}.Validate(testNow)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestUpdateTaskInputValidate(t *testing.T) {
	future := testNow.Add(24 * time.Hour).Format(time.RFC3339)
	past := testNow.Add(-time.Hour).Format(time.RFC3339)

	strPtr := func(s string) *string { return &s }

	t.Run("NoFields", func(t *testing.T) {
		_, err := UpdateTaskInput{}.Validate(testNow)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Errors, 1)
		assert.Equal(t, "At least one field is required for update", verr.Errors[0].Message)
	})

	t.Run("SingleField", func(t *testing.T) {
		update, err := UpdateTaskInput{Title: strPtr("renamed")}.Validate(testNow)
		require.NoError(t, err)
		require.NotNil(t, update.Title)
		assert.Equal(t, "renamed", *update.Title)
		assert.Nil(t, update.Description)
		assert.Nil(t, update.DueDate)
		assert.Nil(t, update.Status)
	})

	t.Run("AllFields", func(t *testing.T) {
		update, err := UpdateTaskInput{
			Title:       strPtr("renamed"),
			Description: strPtr("new description"),
			DueDate:     strPtr(future),
			Status:      strPtr("in-progress"),
		}.Validate(testNow)
		require.NoError(t, err)
		assert.Equal(t, TaskStatusInProgress, *update.Status)
		assert.True(t, update.DueDate.After(testNow))
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		_, err := UpdateTaskInput{Title: strPtr("  ")}.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "title")
	})

	t.Run("MultibyteTitleCountedInCharacters", func(t *testing.T) {
		_, err := UpdateTaskInput{Title: strPtr(strings.Repeat("å", 100))}.Validate(testNow)
		assert.NoError(t, err)

		_, err = UpdateTaskInput{Title: strPtr(strings.Repeat("å", 101))}.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "title")
	})

	t.Run("PastDueDate", func(t *testing.T) {
		_, err := UpdateTaskInput{DueDate: strPtr(past)}.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "due_date")
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		_, err := UpdateTaskInput{Status: strPtr("INVALID_STATUS")}.Validate(testNow)
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "status")
	})
}

func TestListTasksInputValidate(t *testing.T) {
	intPtr := func(i int) *int { return &i }

	t.Run("Defaults", func(t *testing.T) {
		filter, err := ListTasksInput{}.Validate()
		require.NoError(t, err)
		assert.Equal(t, DefaultPage, filter.Page)
		assert.Equal(t, DefaultLimit, filter.Limit)
		assert.Equal(t, SortByDueDate, filter.SortBy)
		assert.Equal(t, SortAsc, filter.SortOrder)
		assert.Nil(t, filter.Status)
		assert.Empty(t, filter.Search)
	})

	t.Run("ExplicitValues", func(t *testing.T) {
		filter, err := ListTasksInput{
			Page:      intPtr(3),
			Limit:     intPtr(25),
			SortBy:    "created_at",
			SortOrder: "DESC",
			Status:    "pending",
			Search:    "groceries",
		}.Validate()
		require.NoError(t, err)
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 25, filter.Limit)
		assert.Equal(t, SortByCreatedAt, filter.SortBy)
		assert.Equal(t, SortDesc, filter.SortOrder)
		require.NotNil(t, filter.Status)
		assert.Equal(t, TaskStatusPending, *filter.Status)
		assert.Equal(t, "groceries", filter.Search)
	})

	t.Run("PageBelowOne", func(t *testing.T) {
		_, err := ListTasksInput{Page: intPtr(0)}.Validate()
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "page")
	})

	t.Run("LimitAboveMax", func(t *testing.T) {
		_, err := ListTasksInput{Limit: intPtr(101)}.Validate()
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "limit")
	})

	t.Run("MultibyteSearchCountedInCharacters", func(t *testing.T) {
		filter, err := ListTasksInput{Search: strings.Repeat("å", 100)}.Validate()
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("å", 100), filter.Search)

		_, err = ListTasksInput{Search: strings.Repeat("å", 101)}.Validate()
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "search")
	})

	t.Run("InvalidSortField", func(t *testing.T) {
		_, err := ListTasksInput{SortBy: "updated_at"}.Validate()
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "sortBy")
	})

	t.Run("LowercaseSortOrder", func(t *testing.T) {
		_, err := ListTasksInput{SortOrder: "asc"}.Validate()
		require.Error(t, err)
		assert.Contains(t, fieldNames(t, err), "sortOrder")
	})

	t.Run("DateRange", func(t *testing.T) {
		filter, err := ListTasksInput{
			DueDateStart: "2025-06-01",
			DueDateEnd:   "2025-06-30",
		}.Validate()
		require.NoError(t, err)
		require.NotNil(t, filter.DueDateStart)
		require.NotNil(t, filter.DueDateEnd)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		_, err := ListTasksInput{
			DueDateStart: "2025-06-30",
			DueDateEnd:   "2025-06-01",
		}.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t,
			"Due date end must be after or equal to due date start",
			verr.Errors[0].Message)
	})

	t.Run("EqualBoundsAllowed", func(t *testing.T) {
		_, err := ListTasksInput{
			DueDateStart: "2025-06-15",
			DueDateEnd:   "2025-06-15",
		}.Validate()
		assert.NoError(t, err)
	})

	t.Run("CollectsAllViolations", func(t *testing.T) {
		_, err := ListTasksInput{
			Page:      intPtr(-1),
			Limit:     intPtr(500),
			SortBy:    "priority",
			SortOrder: "sideways",
			Status:    "bogus",
		}.Validate()
		require.Error(t, err)

		fields := fieldNames(t, err)
		assert.Equal(t, []string{"page", "limit", "sortBy", "sortOrder", "status"}, fields)
	})
}
