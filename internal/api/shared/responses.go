package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dstanley/taskforge-api/internal/domain"
)

// DataResponse is the envelope for successful single-object responses.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ListMeta carries pagination metadata for list responses.
type ListMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// ListResponse is the envelope for successful list responses.
type ListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    ListMeta    `json:"meta"`
}

// ErrorResponse is the uniform envelope for every error response. Errors
// is populated only for validation failures; Timestamp is ISO-8601.
type ErrorResponse struct {
	Status    int                 `json:"status"`
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
	Timestamp string              `json:"timestamp"`
	Path      string              `json:"path"`
	TraceID   string              `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// newErrorResponse assembles the uniform error envelope for a request.
func newErrorResponse(r *http.Request, status int, message string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		TraceID:   GetTraceID(r.Context()),
	}
}

// RespondWithError writes a JSON error envelope with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, newErrorResponse(r, status, message))
}

// RespondWithValidationError writes a 400 envelope carrying the full
// ordered list of field errors.
func RespondWithValidationError(
	w http.ResponseWriter,
	r *http.Request,
	fieldErrors []domain.FieldError,
) {
	response := newErrorResponse(r, http.StatusBadRequest, "Validation failed")
	response.Errors = fieldErrors

	slog.Debug("sending validation error response",
		"field_errors", len(fieldErrors),
		"trace_id", response.TraceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, http.StatusBadRequest, response)
}

// RespondWithErrorAndLog writes a sanitized error envelope while logging
// the full underlying error. 5xx responses log at ERROR level, everything
// else at DEBUG. The raw error never reaches the client.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, newErrorResponse(r, status, userMessage))
}
