package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dstanley/taskforge-api/internal/api/shared"
	"github.com/dstanley/taskforge-api/internal/domain"
	"github.com/dstanley/taskforge-api/internal/platform/logger"
	"github.com/dstanley/taskforge-api/internal/service"
	"github.com/dstanley/taskforge-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	service service.TaskService
	logger  *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc service.TaskService, logger *slog.Logger) *TaskHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		service: svc,
		logger:  logger.With(slog.String("component", "task_handler")),
	}
}

// taskIDFromRequest parses the {id} route parameter as an integer.
func taskIDFromRequest(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// writeError translates any error from the service layer into the uniform
// error envelope. Validation failures carry their field errors; everything
// else gets a sanitized message with the original error logged.
func (h *TaskHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.Errors)
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var in domain.CreateTaskInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.CreateTask(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.TaskID))
	shared.RespondWithJSON(w, r, http.StatusCreated, shared.DataResponse{
		Success: true,
		Data:    task,
	})
}

// queryInt parses an integer query parameter. An absent or unparseable
// value yields nil, which the validator treats as "use the default"; only
// parseable out-of-range values become validation errors.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// List handles GET /api/tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := domain.ListTasksInput{
		Page:         queryInt(r, "page"),
		Limit:        queryInt(r, "limit"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
		Status:       q.Get("status"),
		Search:       q.Get("search"),
		DueDateStart: q.Get("due_date_start"),
		DueDateEnd:   q.Get("due_date_end"),
	}

	tasks, total, err := h.service.ListTasks(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page := domain.DefaultPage
	if in.Page != nil {
		page = *in.Page
	}
	limit := domain.DefaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.ListResponse{
		Success: true,
		Data:    tasks,
		Meta: shared.ListMeta{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetByID handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		h.writeError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{
		Success: true,
		Data:    task,
	})
}

// Update handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var in domain.UpdateTaskInput
	if err := shared.DecodeJSON(r, &in); err != nil {
		log.Warn("invalid request body",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		h.writeError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.DataResponse{
		Success: true,
		Data:    task,
	})
}

// Delete handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("Task with ID %d not found", id))
			return
		}
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
