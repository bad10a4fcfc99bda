package blog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evalgo.org/cookbook/models"
)

func TestTaskStoreLifecycle(t *testing.T) {
	tasks := newTestStore(t).Tasks()
	ctx := context.Background()

	task := &models.Task{Title: "Buy milk", Description: "2 litres", CreatedBy: "alice"}
	require.NoError(t, tasks.CreateTask(ctx, task))
	require.False(t, task.ID.IsZero())
	assert.False(t, task.CreatedAt.IsZero())

	got, err := tasks.GetTask(ctx, task.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "alice", got.CreatedBy)

	desc := "oat"
	require.NoError(t, tasks.UpdateTask(ctx, task.ID.Hex(), models.TaskUpdate{Description: &desc}))
	got, err = tasks.GetTask(ctx, task.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "oat", got.Description)

	// an empty update only checks that the task exists
	assert.NoError(t, tasks.UpdateTask(ctx, task.ID.Hex(), models.TaskUpdate{}))

	require.NoError(t, tasks.DeleteTask(ctx, task.ID.Hex()))
	_, err = tasks.GetTask(ctx, task.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskStoreNotFound(t *testing.T) {
	tasks := newTestStore(t).Tasks()
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	title := "x"
	assert.ErrorIs(t, tasks.UpdateTask(ctx, missing, models.TaskUpdate{Title: &title}), ErrNotFound)
	assert.ErrorIs(t, tasks.UpdateTask(ctx, missing, models.TaskUpdate{}), ErrNotFound)
	assert.ErrorIs(t, tasks.DeleteTask(ctx, missing), ErrNotFound)

	_, err := tasks.GetTask(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTaskStoreListFilter(t *testing.T) {
	tasks := newTestStore(t).Tasks()
	ctx := context.Background()

	for _, title := range []string{"one", "two", "two"} {
		require.NoError(t, tasks.CreateTask(ctx, &models.Task{Title: title, CreatedBy: "alice"}))
	}

	all, total, err := tasks.ListTasks(ctx, bson.M{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "one", all[0].Title)

	page, total, err := tasks.ListTasks(ctx, bson.M{"title": bson.M{"$eq": "two"}}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, "two", page[0].Title)

	_, _, err = tasks.ListTasks(ctx, bson.M{"owner": bson.M{"$eq": "bob"}}, 10, 0)
	assert.ErrorIs(t, err, ErrInvalid)

	_, _, err = tasks.ListTasks(ctx, bson.M{"title": bson.M{"$ne": "two"}}, 10, 0)
	assert.ErrorIs(t, err, ErrInvalid)
}
