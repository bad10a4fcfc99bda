// Package blog provides the relational users/posts/comments store behind the
// blog endpoints, and the SQL task store. It runs on bun with either Postgres
// (pgx) or SQLite (modernc).
package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/models"
)

var (
	// ErrNotFound is returned when a referenced user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when input violates a column constraint.
	ErrInvalid = errors.New("invalid input")
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Store is the bun-backed blog store.
type Store struct {
	db     *bun.DB
	driver string
}

// Open connects to the database for driver ("postgres" or "sqlite") and
// creates missing tables.
func Open(ctx context.Context, driver, dsn string, maxOpenConns int) (*Store, error) {
	driverName := driver
	// The pgx stdlib registers driver name "pgx"; map "postgres" to that driver.
	if driver == "postgres" {
		driverName = "pgx"
	}
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("unsupported sql driver: %q", driver)
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch {
	case driver == "sqlite" && strings.Contains(dsn, ":memory:"):
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	case maxOpenConns > 0:
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}

	s := &Store{db: createBunDB(sqlDB, driver), driver: driver}
	if err := s.db.PingContext(ctx); err != nil {
		_ = s.db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := s.CreateTables(ctx); err != nil {
		_ = s.db.Close()
		return nil, err
	}

	logging.Debugf("blog: opened %s store in %s", driver, time.Since(start))
	return s, nil
}

func createBunDB(sqlDB *sql.DB, driver string) *bun.DB {
	if driver == "postgres" {
		return bun.NewDB(sqlDB, pgdialect.New())
	}
	return bun.NewDB(sqlDB, sqlitedialect.New())
}

// CreateTables creates the users, posts, comments and tasks tables if
// missing, then adds columns that older databases lack.
func (s *Store) CreateTables(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*models.BlogUser)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*models.Post)(nil)).IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*models.Comment)(nil)).IfNotExists().
		ForeignKey(`("post_id") REFERENCES "posts" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("create comments table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*taskRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return s.addCreatedAt(ctx, "posts", "comments")
}

// addCreatedAt adds the created_at column to tables created before it
// existed. Existing rows get the migration time.
func (s *Store) addCreatedAt(ctx context.Context, tables ...string) error {
	colType := "TIMESTAMP"
	if s.driver == "postgres" {
		colType = "TIMESTAMPTZ"
	}

	for _, table := range tables {
		exists, err := s.columnExists(ctx, table, "created_at")
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		logging.Infof("blog: adding created_at column to %s", table)
		if _, err := s.db.ExecContext(ctx, "ALTER TABLE ? ADD COLUMN created_at "+colType, bun.Ident(table)); err != nil {
			return fmt.Errorf("add created_at to %s: %w", table, err)
		}
		if _, err := s.db.ExecContext(ctx, "UPDATE ? SET created_at = ? WHERE created_at IS NULL",
			bun.Ident(table), time.Now().UTC()); err != nil {
			return fmt.Errorf("backfill created_at in %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) columnExists(ctx context.Context, table, column string) (bool, error) {
	query := "SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?"
	if s.driver == "postgres" {
		query = "SELECT COUNT(*) FROM information_schema.columns WHERE table_name = ? AND column_name = ?"
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, table, column).Scan(&n); err != nil {
		return false, fmt.Errorf("inspect %s columns: %w", table, err)
	}
	return n > 0, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver returns the configured driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Login returns the user with username, creating it on first login.
func (s *Store) Login(ctx context.Context, username string) (*models.BlogUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalid)
	}

	user, err := s.userByName(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &models.BlogUser{Username: username, Interests: []map[string]any{}}
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		// a concurrent login may have created the row first
		if existing, lookupErr := s.userByName(ctx, username); lookupErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	logging.Infof("blog: created user %q", username)
	return user, nil
}

func (s *Store) userByName(ctx context.Context, username string) (*models.BlogUser, error) {
	user := new(models.BlogUser)
	err := s.db.NewSelect().Model(user).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	if user.Interests == nil {
		user.Interests = []map[string]any{}
	}
	return user, nil
}

// CreatePost adds a post for an existing user.
func (s *Store) CreatePost(ctx context.Context, userID int64, title, content string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if utf8.RuneCountInString(title) > models.MaxPostTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalid, models.MaxPostTitleLength)
	}

	exists, err := s.db.NewSelect().Model((*models.BlogUser)(nil)).Where("id = ?", userID).Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Comments:  []*models.Comment{},
	}
	if _, err := s.db.NewInsert().Model(post).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// ListPostsWithComments returns every post, newest first, each with its
// comments in id order.
func (s *Store) ListPostsWithComments(ctx context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := s.db.NewSelect().
		Model(&posts).
		Relation("Comments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Order("p.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	for _, p := range posts {
		if p.Comments == nil {
			p.Comments = []*models.Comment{}
		}
	}
	return posts, nil
}

// CreateComment adds a comment to an existing post.
func (s *Store) CreateComment(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalid)
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: content must be at most %d characters", ErrInvalid, models.MaxCommentLength)
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content, PostID: postID, CreatedAt: time.Now().UTC()}
	if _, err := s.db.NewInsert().Model(comment).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the comments of a post in id order.
func (s *Store) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0)
	if err := s.db.NewSelect().Model(&comments).Where("post_id = ?", postID).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *Store) requirePost(ctx context.Context, postID int64) error {
	exists, err := s.db.NewSelect().Model((*models.Post)(nil)).Where("id = ?", postID).Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up post: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	return nil
}
