package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// dueDateFormats are the accepted wire formats for due dates, tried in order.
var dueDateFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDueDate parses a client-supplied timestamp string.
func parseDueDate(raw string) (time.Time, bool) {
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateTaskInput is the raw shape of a task-creation request. All fields
// arrive as strings so the validator can report parse failures as field
// errors rather than decode errors.
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// Validate checks the creation input against the task rules, collecting
// every violation. On success it returns the normalized NewTask; on failure
// the NewTask is the zero value and the error is a *ValidationError carrying
// the ordered field errors. now anchors the future-only due date check.
func (in CreateTaskInput) Validate(now time.Time) (NewTask, error) {
	var errs []FieldError

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLen {
		errs = append(errs, FieldError{
			Field:   "title",
			Message: "Title cannot be longer than 100 characters",
		})
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Description is required"})
	}

	var dueDate time.Time
	if in.DueDate == "" {
		errs = append(errs, FieldError{Field: "due_date", Message: "Due date is required"})
	} else if parsed, ok := parseDueDate(in.DueDate); !ok {
		errs = append(errs, FieldError{Field: "due_date", Message: "Due date must be a valid date"})
	} else if !parsed.After(now) {
		errs = append(errs, FieldError{Field: "due_date", Message: "Due date must be in the future"})
	} else {
		dueDate = parsed
	}

	status := TaskStatus(in.Status)
	if in.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "Status is required"})
	} else if !status.IsValid() {
		errs = append(errs, FieldError{
			Field:   "status",
			Message: "Status must be one of: " + statusList(),
		})
	}

	if len(errs) > 0 {
		return NewTask{}, NewValidationError(errs...)
	}

	return NewTask{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
	}, nil
}

// UpdateTaskInput is the raw shape of a task-update request. Every field is
// optional; nil means "not supplied" as opposed to "set to empty".
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

// Validate checks the update input. Supplied fields follow the same rules as
// creation; an update carrying zero fields is itself a validation error.
func (in UpdateTaskInput) Validate(now time.Time) (TaskUpdate, error) {
	if in.Title == nil && in.Description == nil && in.DueDate == nil && in.Status == nil {
		return TaskUpdate{}, NewValidationError(FieldError{
			Field:   "fields",
			Message: "At least one field is required for update",
		})
	}

	var errs []FieldError
	var update TaskUpdate

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			errs = append(errs, FieldError{Field: "title", Message: "Title cannot be empty"})
		} else if utf8.RuneCountInString(title) > MaxTitleLen {
			errs = append(errs, FieldError{
				Field:   "title",
				Message: "Title cannot be longer than 100 characters",
			})
		} else {
			update.Title = &title
		}
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			errs = append(errs, FieldError{
				Field:   "description",
				Message: "Description cannot be empty",
			})
		} else {
			update.Description = &description
		}
	}

	if in.DueDate != nil {
		if parsed, ok := parseDueDate(*in.DueDate); !ok {
			errs = append(errs, FieldError{
				Field:   "due_date",
				Message: "Due date must be a valid date",
			})
		} else if !parsed.After(now) {
			errs = append(errs, FieldError{
				Field:   "due_date",
				Message: "Due date must be in the future",
			})
		} else {
			update.DueDate = &parsed
		}
	}

	if in.Status != nil {
		status := TaskStatus(*in.Status)
		if !status.IsValid() {
			errs = append(errs, FieldError{
				Field:   "status",
				Message: "Status must be one of: " + statusList(),
			})
		} else {
			update.Status = &status
		}
	}

	if len(errs) > 0 {
		return TaskUpdate{}, NewValidationError(errs...)
	}

	return update, nil
}

// ListTasksInput is the raw shape of list-query parameters. Page and Limit
// are pointers because the handler treats unparseable values as "not
// supplied" (falling back to defaults) while out-of-range values are real
// violations.
type ListTasksInput struct {
	Page         *int
	Limit        *int
	SortBy       string
	SortOrder    string
	Status       string
	Search       string
	DueDateStart string
	DueDateEnd   string
}

// Validate normalizes the list query: defaults applied, bounds enforced,
// timestamps parsed. Any violation returns a *ValidationError with the full
// list of field errors and no partial normalization.
func (in ListTasksInput) Validate() (TaskFilter, error) {
	var errs []FieldError

	filter := TaskFilter{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}

	if in.Page != nil {
		if *in.Page < 1 {
			errs = append(errs, FieldError{Field: "page", Message: "Page must be at least 1"})
		} else {
			filter.Page = *in.Page
		}
	}

	if in.Limit != nil {
		switch {
		case *in.Limit < 1:
			errs = append(errs, FieldError{Field: "limit", Message: "Limit must be at least 1"})
		case *in.Limit > MaxLimit:
			errs = append(errs, FieldError{Field: "limit", Message: "Limit cannot exceed 100"})
		default:
			filter.Limit = *in.Limit
		}
	}

	if in.SortBy != "" {
		switch SortField(in.SortBy) {
		case SortByTitle, SortByDueDate, SortByStatus, SortByCreatedAt:
			filter.SortBy = SortField(in.SortBy)
		default:
			errs = append(errs, FieldError{
				Field:   "sortBy",
				Message: "Sort field must be one of [title, due_date, status, created_at]",
			})
		}
	}

	if in.SortOrder != "" {
		switch SortOrder(in.SortOrder) {
		case SortAsc, SortDesc:
			filter.SortOrder = SortOrder(in.SortOrder)
		default:
			errs = append(errs, FieldError{
				Field:   "sortOrder",
				Message: "Sort order must be either ASC or DESC",
			})
		}
	}

	if in.Status != "" {
		status := TaskStatus(in.Status)
		if !status.IsValid() {
			errs = append(errs, FieldError{
				Field:   "status",
				Message: "Status must be one of: " + statusList(),
			})
		} else {
			filter.Status = &status
		}
	}

	if in.Search != "" {
		if utf8.RuneCountInString(in.Search) > MaxSearchLen {
			errs = append(errs, FieldError{
				Field:   "search",
				Message: "Search cannot be longer than 100 characters",
			})
		} else {
			filter.Search = in.Search
		}
	}

	if in.DueDateStart != "" {
		if parsed, ok := parseDueDate(in.DueDateStart); ok {
			filter.DueDateStart = &parsed
		} else {
			errs = append(errs, FieldError{
				Field:   "due_date_start",
				Message: "Due date start must be a valid date",
			})
		}
	}

	if in.DueDateEnd != "" {
		if parsed, ok := parseDueDate(in.DueDateEnd); ok {
			filter.DueDateEnd = &parsed
		} else {
			errs = append(errs, FieldError{
				Field:   "due_date_end",
				Message: "Due date end must be a valid date",
			})
		}
	}

	if filter.DueDateStart != nil && filter.DueDateEnd != nil &&
		filter.DueDateEnd.Before(*filter.DueDateStart) {
		errs = append(errs, FieldError{
			Field:   "due_date_end",
			Message: "Due date end must be after or equal to due date start",
		})
	}

	if len(errs) > 0 {
		return TaskFilter{}, NewValidationError(errs...)
	}

	return filter, nil
}
