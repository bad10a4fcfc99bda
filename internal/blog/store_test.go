package blog

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), "sqlite", ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x", 0)
	assert.ErrorContains(t, err, "unsupported sql driver")
}

func TestCreateTablesIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateTables(context.Background()))
	assert.Equal(t, "sqlite", s.Driver())
	assert.NoError(t, s.Ping(context.Background()))
}

func TestLoginGetOrCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Login(ctx, "alice")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "alice", first.Username)
	assert.NotNil(t, first.Interests)

	again, err := s.Login(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := s.Login(ctx, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	_, err = s.Login(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreatePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.Login(ctx, "alice")
	require.NoError(t, err)

	post, err := s.CreatePost(ctx, user.ID, "Hello", "first post")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, user.ID, post.UserID)
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
	assert.False(t, post.CreatedAt.IsZero())

	_, err = s.CreatePost(ctx, 9999, "Hello", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreatePost(ctx, user.ID, strings.Repeat("x", 201), "too long")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.CreatePost(ctx, user.ID, strings.Repeat("é", 200), "multibyte fits")
	assert.NoError(t, err)
}

func TestCommentsAndListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.Login(ctx, "alice")
	require.NoError(t, err)
	older, err := s.CreatePost(ctx, user.ID, "older", "")
	require.NoError(t, err)
	newer, err := s.CreatePost(ctx, user.ID, "newer", "")
	require.NoError(t, err)

	c1, err := s.CreateComment(ctx, older.ID, "one")
	require.NoError(t, err)
	c2, err := s.CreateComment(ctx, older.ID, "two")
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, 4242, "orphan")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.CreateComment(ctx, older.ID, strings.Repeat("y", 501))
	assert.ErrorIs(t, err, ErrInvalid)

	comments, err := s.ListComments(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c1.ID, comments[0].ID)
	assert.Equal(t, c2.ID, comments[1].ID)

	_, err = s.ListComments(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)

	posts, err := s.ListPostsWithComments(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Empty(t, posts[0].Comments)
	assert.NotNil(t, posts[0].Comments)
	assert.Equal(t, older.ID, posts[1].ID)
	require.Len(t, posts[1].Comments, 2)
	assert.Equal(t, "one", posts[1].Comments[0].Content)
}

func TestOpenAddsCreatedAtToOldTables(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	legacy, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, username VARCHAR NOT NULL UNIQUE, interests VARCHAR NOT NULL DEFAULT '[]')`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY AUTOINCREMENT, title VARCHAR(200) NOT NULL, content VARCHAR NOT NULL, user_id INTEGER NOT NULL)`,
		`CREATE TABLE comments (id INTEGER PRIMARY KEY AUTOINCREMENT, content VARCHAR(500) NOT NULL, post_id INTEGER NOT NULL)`,
		`INSERT INTO users (username, interests) VALUES ('alice', '[]')`,
		`INSERT INTO posts (title, content, user_id) VALUES ('Old post', 'from before', 1)`,
		`INSERT INTO comments (content, post_id) VALUES ('old comment', 1)`,
	} {
		_, err := legacy.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, legacy.Close())

	s, err := Open(ctx, "sqlite", path, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	for _, table := range []string{"posts", "comments"} {
		ok, err := s.columnExists(ctx, table, "created_at")
		require.NoError(t, err)
		assert.True(t, ok, table)
	}

	posts, err := s.ListPostsWithComments(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Old post", posts[0].Title)
	assert.False(t, posts[0].CreatedAt.IsZero())
	require.Len(t, posts[0].Comments, 1)
	assert.False(t, posts[0].Comments[0].CreatedAt.IsZero())

	// a second run finds the column and leaves the data alone
	require.NoError(t, s.CreateTables(ctx))
	user, err := s.Login(ctx, "alice")
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, user.ID, "New post", "")
	assert.NoError(t, err)
}
