package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a to-do entry kept in the "tasks" collection. Image holds the public
// URL of an uploaded picture, not the picture itself.
type Task struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedBy   string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// TaskUpdate carries the task fields a PUT may overwrite. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Image       *string
}

// Empty reports whether the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Image == nil
}

// TaskFilterFields lists the task fields that may be used as equality
// filters when listing tasks.
var TaskFilterFields = []string{"title", "description", "created_by", "image"}
