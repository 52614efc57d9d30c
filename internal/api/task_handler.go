package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskroom/taskroom-api/internal/domain"
	"github.com/taskroom/taskroom-api/internal/store"
)

// TaskHandler handles task CRUD requests. Every operation is scoped to the
// authenticated user taken from the request context; no identifier in the
// request body or query can substitute for it.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
	}
}

// List handles GET /api/rooms.
// Returns the user's tasks newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /api/rooms.
// Title must be present; an empty string is accepted.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Title is required and must be a string")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Title is required and must be a string")
		return
	}

	task, err := domain.NewTask(userID, *req.Title)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task data")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		slog.Error("failed to create task", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/rooms/{id}.
// Applies a partial update: absent fields are left untouched.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	patch := domain.TaskPatch{
		Title:     req.Title,
		Completed: req.Completed,
	}

	task, err := h.taskStore.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to update task", "error", err, "user_id", userID, "task_id", taskID)
		RespondWithError(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Complete handles PATCH /api/rooms/{id}/complete.
// Idempotent: completing a completed task succeeds and leaves it completed.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.taskStore.Complete(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to complete task", "error", err, "user_id", userID, "task_id", taskID)
		RespondWithError(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/rooms/{id}.
// Hard delete; responds 204 with an empty body on success.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskStore.Delete(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to delete task", "error", err, "user_id", userID, "task_id", taskID)
		RespondWithError(w, r, http.StatusInternalServerError, "Server error")
		return
	}

	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
