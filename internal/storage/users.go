package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evalgo.org/cookbook/models"
)

// CreateUser inserts a new user. A taken username yields ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	ts := now()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	if user.Roles == nil {
		user.Roles = []models.Role{}
	}

	res, err := s.collection(UsersCollection).InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, mapError(err))
	}
	user.ID = objectIDOf(res.InsertedID)
	return nil
}

// GetUser retrieves a user by hex ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.collection(UsersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.collection(UsersCollection).FindOne(ctx, bson.M{"username": bson.M{"$eq": username}}).Decode(&user)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// ListUsers returns all users ordered by username.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cur, err := s.collection(UsersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of stored users.
func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	return s.collection(UsersCollection).CountDocuments(ctx, bson.M{})
}

// RecordLogin stamps last_login_at on a successful login.
func (s *Storage) RecordLogin(ctx context.Context, username string, at time.Time) error {
	res, err := s.collection(UsersCollection).UpdateOne(ctx,
		bson.M{"username": bson.M{"$eq": username}},
		bson.M{"$set": bson.M{"last_login_at": at.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
