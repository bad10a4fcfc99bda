// Package storage provides the MongoDB storage layer for Cookbook.
// It wraps the official mongo-driver and exposes type-safe operations for
// items, tasks, users, the author/book library and the group hierarchy.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/internal/logging"
)

// Collection names.
const (
	ItemsCollection     = "items"
	TasksCollection     = "tasks"
	UsersCollection     = "users"
	AuthorsCollection   = "authors"
	BooksCollection     = "books"
	GroupsCollection    = "group"
	GroupUsersColl      = "user"
	AddressesCollection = "address"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an id is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid object id")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Storage provides the main storage interface for Cookbook.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	config *config.Config
}

// New connects to MongoDB using the application configuration, verifies the
// connection and ensures the indexes Cookbook relies on exist.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	timeout := cfg.Mongo.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.Mongo.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.Mongo.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &Storage{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
		config: cfg,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to initialize indexes: %w", err)
	}

	logging.Infof("connected to mongo database %q", cfg.Mongo.Database)
	return s, nil
}

// ensureIndexes creates the indexes used by lookups and uniqueness checks.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users-username"),
		},
		BooksCollection: {
			Keys:    bson.D{{Key: "author", Value: 1}},
			Options: options.Index().SetName("books-author"),
		},
		TasksCollection: {
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("tasks-created-by"),
		},
	}

	for coll, model := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

// Ping verifies the server is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// DatabaseName returns the configured database name.
func (s *Storage) DatabaseName() string {
	return s.db.Name()
}

// Close disconnects from MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ParseObjectID converts a hex id into an ObjectID, mapping failures to ErrInvalidID.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// mapError translates driver errors into the package sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// objectIDOf extracts the ObjectID assigned by an insert.
func objectIDOf(v interface{}) primitive.ObjectID {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}

// now returns the current time truncated to Mongo's millisecond precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
