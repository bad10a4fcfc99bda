package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"evalgo.org/cookbook/models"
)

// CreateItem inserts a new item and sets its ID and timestamps.
func (s *Storage) CreateItem(ctx context.Context, item *models.Item) error {
	ts := now()
	item.CreatedAt = ts
	item.UpdatedAt = ts

	res, err := s.collection(ItemsCollection).InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", mapError(err))
	}
	item.ID = objectIDOf(res.InsertedID)
	item.HasFile = len(item.File) > 0
	return nil
}

// GetItem retrieves an item by its hex ID.
func (s *Storage) GetItem(ctx context.Context, id string) (*models.Item, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var item models.Item
	if err := s.collection(ItemsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		return nil, mapError(err)
	}
	item.HasFile = len(item.File) > 0
	return &item, nil
}

// ListItems returns one page of items ordered by _id along with the total count.
// The inline file bytes are not loaded.
func (s *Storage) ListItems(ctx context.Context, skip, limit int) ([]*models.Item, int64, error) {
	coll := s.collection(ItemsCollection)

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"file": 0})

	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*models.Item, 0, limit)
	for cur.Next(ctx) {
		var item models.Item
		if err := cur.Decode(&item); err != nil {
			return nil, 0, fmt.Errorf("failed to decode item: %w", err)
		}
		item.HasFile = item.FileName != ""
		items = append(items, &item)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateItem sets the supplied fields. It returns ErrNotFound only when no
// document matched; an update that changes nothing still succeeds.
func (s *Storage) UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) (*models.Item, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	if upd.Empty() {
		return s.GetItem(ctx, id)
	}

	set := bson.M{"updated_at": now()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	res, err := s.collection(ItemsCollection).UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", mapError(err))
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetItem(ctx, id)
}

// DeleteItem removes an item by ID.
func (s *Storage) DeleteItem(ctx context.Context, id string) error {
	oid, err := ParseObjectID(id)
	if err != nil {
		return err
	}

	res, err := s.collection(ItemsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
