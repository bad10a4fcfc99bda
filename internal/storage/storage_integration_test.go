//go:build integration

package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/models"
)

// newTestStorage connects to CB_TEST_MONGO_URI using a throwaway database.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	uri := os.Getenv("CB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CB_TEST_MONGO_URI not set")
	}

	cfg := &config.Config{Mongo: config.MongoConfig{
		URI:      uri,
		Database: fmt.Sprintf("cookbook_test_%d", time.Now().UnixNano()),
		Timeout:  5 * time.Second,
	}}

	ctx := context.Background()
	s, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.db.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestItemsLifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	item := &models.Item{Name: "notebook", Description: "A5", File: []byte("hi"), FileName: "a.txt"}
	require.NoError(t, s.CreateItem(ctx, item))
	assert.False(t, item.ID.IsZero())
	assert.True(t, item.HasFile)

	got, err := s.GetItem(ctx, item.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got.File)

	items, total, err := s.ListItems(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].File)
	assert.True(t, items[0].HasFile)

	// unchanged update still succeeds
	name := "notebook"
	_, err = s.UpdateItem(ctx, item.ID.Hex(), models.ItemUpdate{Name: &name})
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(ctx, item.ID.Hex()))
	_, err = s.GetItem(ctx, item.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteItem(ctx, item.ID.Hex()), ErrNotFound)
}

func TestTasksFilter(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTask(ctx, &models.Task{Title: "a", CreatedBy: "alice"}))
	require.NoError(t, s.CreateTask(ctx, &models.Task{Title: "b", CreatedBy: "bob"}))

	filter, err := BuildTaskFilter(map[string]string{"created_by": "alice"})
	require.NoError(t, err)

	tasks, total, err := s.ListTasks(ctx, filter, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)

	// an empty update leaves updated_at alone and still reports missing tasks
	before := tasks[0].UpdatedAt
	require.NoError(t, s.UpdateTask(ctx, tasks[0].ID.Hex(), models.TaskUpdate{}))
	got, err := s.GetTask(ctx, tasks[0].ID.Hex())
	require.NoError(t, err)
	assert.True(t, before.Equal(got.UpdatedAt))
	assert.ErrorIs(t, s.UpdateTask(ctx, primitive.NewObjectID().Hex(), models.TaskUpdate{}), ErrNotFound)
}

func TestUsersUnique(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "alice", Enabled: true}))
	err := s.CreateUser(ctx, &models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicate)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLibraryCascade(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a, b, err := s.SeedLibrary(ctx, &models.LibraryFixture{Authors: []models.AuthorFixture{
		{Name: "Le Guin", Books: []string{"Earthsea", "Dispossessed"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	authors, err := s.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	require.NoError(t, s.DeleteAuthor(ctx, authors[0].ID.Hex()))
	books, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestGroupTree(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	res, err := s.collection(GroupsCollection).InsertOne(ctx, bson.M{"name": "ops"})
	require.NoError(t, err)
	ures, err := s.collection(GroupUsersColl).InsertOne(ctx, bson.M{"name": "ann", "group": res.InsertedID})
	require.NoError(t, err)
	_, err = s.collection(AddressesCollection).InsertOne(ctx, bson.M{"city": "Berlin", "user": ures.InsertedID})
	require.NoError(t, err)

	groups, err := s.GroupTree(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	users, ok := groups[0]["users"].(bson.A)
	require.True(t, ok)
	require.Len(t, users, 1)
}
