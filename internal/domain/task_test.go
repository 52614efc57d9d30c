package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		task, err := NewTask(userID, "buy milk")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, "buy milk", task.Title)
		assert.False(t, task.Completed)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("empty title is accepted", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(uuid.New(), "")
		require.NoError(t, err)
		assert.Equal(t, "", task.Title)
	})

	t.Run("missing owner is rejected", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(uuid.Nil, "buy milk")
		assert.ErrorIs(t, err, ErrEmptyTaskUserID)
		assert.Nil(t, task)
	})
}

func TestTaskPatchIsEmpty(t *testing.T) {
	t.Parallel()

	title := "new title"
	completed := true

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{Title: &title}.IsEmpty())
	assert.False(t, TaskPatch{Completed: &completed}.IsEmpty())
}
