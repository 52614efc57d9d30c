package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskroom/taskroom-api/internal/api/shared"
	"github.com/taskroom/taskroom-api/internal/domain"
	"github.com/taskroom/taskroom-api/internal/mocks"
)

// newTaskRouter mounts the handler under the real routes with a stub identity
// middleware, so path parameters resolve the same way they do in production.
func newTaskRouter(handler *TaskHandler, userID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
				req = req.WithContext(ctx)
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/rooms", handler.List)
	r.Post("/api/rooms", handler.Create)
	r.Put("/api/rooms/{id}", handler.Update)
	r.Patch("/api/rooms/{id}/complete", handler.Complete)
	r.Delete("/api/rooms/{id}", handler.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		reader = &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(reader).Encode(body))
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func seedTask(taskStore *mocks.MockTaskStore, userID uuid.UUID, title string, createdAt time.Time) *domain.Task {
	task := &domain.Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	taskStore.Tasks[task.ID] = task
	return task
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates an incomplete task owned by the caller", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(NewTaskHandler(taskStore), userID)

		recorder := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]string{"title": "buy milk"})
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var task domain.Task
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &task))
		assert.Equal(t, "buy milk", task.Title)
		assert.Equal(t, userID, task.UserID)
		assert.False(t, task.Completed)
		assert.Contains(t, taskStore.Tasks, task.ID)
	})

	t.Run("empty title is accepted", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(NewTaskHandler(taskStore), userID)

		recorder := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]string{"title": ""})
		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("absent title is rejected", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(NewTaskHandler(taskStore), userID)

		recorder := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Title is required")
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(NewTaskHandler(mocks.NewMockTaskStore()), uuid.Nil)

		recorder := doJSON(t, router, http.MethodPost, "/api/rooms", map[string]string{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("returns only the caller's tasks newest first", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		otherID := uuid.New()
		taskStore := mocks.NewMockTaskStore()

		base := time.Now().UTC()
		older := seedTask(taskStore, userID, "older", base.Add(-time.Hour))
		newer := seedTask(taskStore, userID, "newer", base)
		seedTask(taskStore, otherID, "not yours", base)

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodGet, "/api/rooms", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, newer.ID, tasks[0].ID)
		assert.Equal(t, older.ID, tasks[1].ID)
	})

	t.Run("no tasks yields an empty array, not null", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(NewTaskHandler(mocks.NewMockTaskStore()), uuid.New())
		recorder := doJSON(t, router, http.MethodGet, "/api/rooms", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "[]\n", recorder.Body.String())
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("partial update leaves absent fields untouched", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, userID, "original title", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodPut, "/api/rooms/"+task.ID.String(),
			map[string]bool{"completed": true})
		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.Task
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, "original title", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("title can be updated alone", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, userID, "old", time.Now().UTC())
		task.Completed = true

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodPut, "/api/rooms/"+task.ID.String(),
			map[string]string{"title": "new"})
		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.Task
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.Equal(t, "new", updated.Title)
		assert.True(t, updated.Completed)
	})

	t.Run("another user's task reads as not found", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, uuid.New(), "not yours", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodPut, "/api/rooms/"+task.ID.String(),
			map[string]string{"title": "hijack"})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Task not found")
		assert.Equal(t, "not yours", taskStore.Tasks[task.ID].Title)
	})

	t.Run("malformed task ID yields bad request", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(NewTaskHandler(mocks.NewMockTaskStore()), userID)
		recorder := doJSON(t, router, http.MethodPut, "/api/rooms/not-a-uuid",
			map[string]string{"title": "x"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid task ID")
	})
}

func TestTaskHandler_Complete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("marks the task completed", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, userID, "buy milk", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodPatch, "/api/rooms/"+task.ID.String()+"/complete", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var updated domain.Task
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
		assert.True(t, updated.Completed)
	})

	t.Run("completing twice is idempotent", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, userID, "buy milk", time.Now().UTC())
		router := newTaskRouter(NewTaskHandler(taskStore), userID)

		path := "/api/rooms/" + task.ID.String() + "/complete"
		first := doJSON(t, router, http.MethodPatch, path, nil)
		second := doJSON(t, router, http.MethodPatch, path, nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.True(t, taskStore.Tasks[task.ID].Completed)
	})

	t.Run("another user's task reads as not found", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, uuid.New(), "not yours", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodPatch, "/api/rooms/"+task.ID.String()+"/complete", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.False(t, taskStore.Tasks[task.ID].Completed)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("deletes and responds with no content", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, userID, "buy milk", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodDelete, "/api/rooms/"+task.ID.String(), nil)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		assert.NotContains(t, taskStore.Tasks, task.ID)
	})

	t.Run("another user's task reads as not found and survives", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(taskStore, uuid.New(), "not yours", time.Now().UTC())

		router := newTaskRouter(NewTaskHandler(taskStore), userID)
		recorder := doJSON(t, router, http.MethodDelete, "/api/rooms/"+task.ID.String(), nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, taskStore.Tasks, task.ID)
	})

	t.Run("malformed task ID yields bad request", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(NewTaskHandler(mocks.NewMockTaskStore()), userID)
		recorder := doJSON(t, router, http.MethodDelete, "/api/rooms/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
