package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evalgo.org/cookbook/models"
)

// UnknownFilterError is returned when a task filter names a field that is
// not in models.TaskFilterFields.
type UnknownFilterError struct {
	Field string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unsupported filter field: %s", e.Field)
}

// BuildTaskFilter converts query parameters into an equality filter.
// Only whitelisted fields are accepted and values are always matched as
// plain strings, so user input never becomes an operator document.
func BuildTaskFilter(params map[string]string) (bson.M, error) {
	allowed := make(map[string]bool, len(models.TaskFilterFields))
	for _, f := range models.TaskFilterFields {
		allowed[f] = true
	}

	filter := bson.M{}
	for k, v := range params {
		if !allowed[k] {
			return nil, &UnknownFilterError{Field: k}
		}
		filter[k] = bson.M{"$eq": v}
	}
	return filter, nil
}

// CreateTask inserts a new task and sets its ID and timestamps.
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	ts := now()
	task.CreatedAt = ts
	task.UpdatedAt = ts

	res, err := s.collection(TasksCollection).InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", mapError(err))
	}
	task.ID = objectIDOf(res.InsertedID)
	return nil
}

// GetTask retrieves a task by its hex ID.
func (s *Storage) GetTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := s.collection(TasksCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&task); err != nil {
		return nil, mapError(err)
	}
	return &task, nil
}

// ListTasks retrieves tasks matching filter, which must come from
// BuildTaskFilter. It returns one page and the total number of matches.
func (s *Storage) ListTasks(ctx context.Context, filter bson.M, limit, offset int) ([]*models.Task, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	coll := s.collection(TasksCollection)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*models.Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask overwrites the supplied fields only.
func (s *Storage) UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}
	if upd.Empty() {
		_, err := s.GetTask(ctx, id)
		return err
	}

	set := bson.M{"updated_at": now()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}

	res, err := s.collection(TasksCollection).UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", mapError(err))
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *Storage) DeleteTask(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.collection(TasksCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
