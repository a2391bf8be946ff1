package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dstanley/taskforge-api/internal/domain"
	"github.com/dstanley/taskforge-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation error maps to 400",
			err:  domain.NewValidationError(domain.FieldError{Field: "title", Message: "Title is required"}),
			want: http.StatusBadRequest,
		},
		{
			name: "task not found maps to 404",
			err:  store.ErrTaskNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "wrapped not found maps to 404",
			err:  fmt.Errorf("looking up task: %w", store.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "invalid entity maps to 400",
			err:  store.ErrInvalidEntity,
			want: http.StatusBadRequest,
		},
		{
			name: "duplicate maps to 400",
			err:  store.ErrDuplicate,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid ID maps to 400",
			err:  domain.ErrInvalidID,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown error maps to 500",
			err:  errors.New("connection reset"),
			want: http.StatusInternalServerError,
		},
		{
			name: "nil error maps to 500",
			err:  nil,
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "task not found",
			err:  store.ErrTaskNotFound,
			want: "Task not found",
		},
		{
			name: "generic not found",
			err:  store.ErrNotFound,
			want: "Resource not found",
		},
		{
			name: "validation failure",
			err:  domain.NewValidationError(domain.FieldError{Field: "status", Message: "Invalid status"}),
			want: "Validation failed",
		},
		{
			name: "invalid entity never leaks detail",
			err:  fmt.Errorf("%w: column does not exist", store.ErrInvalidEntity),
			want: "Invalid task data",
		},
		{
			name: "unknown error never leaks detail",
			err:  errors.New("pq: password authentication failed"),
			want: "Internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}
