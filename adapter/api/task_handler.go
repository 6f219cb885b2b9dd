package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/application"
	"github.com/felixgeelhaar/checklist/internal/productivity/application/queries"
	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TaskHandler handles task API requests.
type TaskHandler struct {
	engine *application.Engine
	logger *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(engine *application.Engine, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{engine: engine, logger: logger}
}

// TaskResponse is the JSON form of a task. The owner is never echoed back.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskListResponse is the JSON form of a filtered task list.
type TaskListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Filter string         `json:"filter"`
	Total  int            `json:"total"`
}

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /api/v1/tasks/{taskID}.
// All three fields are replaced together.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed"`
}

func toTaskResponse(dto *queries.TaskDTO) TaskResponse {
	return TaskResponse{
		ID:          dto.ID.String(),
		Title:       dto.Title,
		Description: dto.Description,
		Completed:   dto.Completed,
		CreatedAt:   dto.CreatedAt,
	}
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	list, err := h.engine.List(r.Context(), ownerID, r.URL.Query().Get("filter"))
	if err != nil {
		h.writeTaskError(w, r, "list tasks", err)
		return
	}

	resp := TaskListResponse{
		Tasks:  make([]TaskResponse, 0, len(list.Tasks)),
		Filter: list.Filter.String(),
		Total:  list.Total,
	}
	for i := range list.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&list.Tasks[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request")
		return
	}

	dto, err := h.engine.Create(r.Context(), ownerID, req.Title, req.Description)
	if err != nil {
		h.writeTaskError(w, r, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(dto))
}

// GetTask handles GET /api/v1/tasks/{taskID}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	dto, err := h.engine.Get(r.Context(), ownerID, taskID)
	if err != nil {
		h.writeTaskError(w, r, "get task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(dto))
}

// ToggleTask handles POST /api/v1/tasks/{taskID}/toggle
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	dto, err := h.engine.Toggle(r.Context(), ownerID, taskID)
	if err != nil {
		h.writeTaskError(w, r, "toggle task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(dto))
}

// UpdateTask handles PUT /api/v1/tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request")
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, "completed is required")
		return
	}

	dto, err := h.engine.Update(r.Context(), ownerID, taskID, req.Title, req.Description, *req.Completed)
	if err != nil {
		h.writeTaskError(w, r, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(dto))
}

// DeleteTask handles DELETE /api/v1/tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerFromContext(r.Context())
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if _, err := h.engine.Delete(r.Context(), ownerID, taskID); err != nil {
		h.writeTaskError(w, r, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return uuid.Nil, false
	}
	return id, true
}

// writeTaskError maps engine errors onto HTTP statuses.
func (h *TaskHandler) writeTaskError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, task.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrStoreUnavailable):
		h.logger.WarnContext(r.Context(), "task store unavailable", "operation", op, "error", err)
		writeError(w, http.StatusServiceUnavailable, "task store unavailable")
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+op, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}
