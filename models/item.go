package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a simple named document kept in the "items" collection.
// An item may carry a small file inline; the bytes are never rendered in JSON.
//
// Example JSON representation:
//
//	{
//	  "id": "665f1c2e9b1d4a0c8e4b7a10",
//	  "name": "notebook",
//	  "description": "A5 dotted",
//	  "has_file": true,
//	  "file_name": "cover.png",
//	  "created_at": "2025-10-29T10:00:00Z"
//	}
type Item struct {
	// ID is the Mongo ObjectID, rendered as a hex string
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Name is the item name (required)
	Name string `json:"name" bson:"name" validate:"required,max=200"`

	// Description is free text
	Description string `json:"description" bson:"description"`

	// File holds optional inline file contents
	File []byte `json:"-" bson:"file,omitempty"`

	// FileName is the original name of the inline file
	FileName string `json:"file_name,omitempty" bson:"file_name,omitempty"`

	// ContentType is the MIME type of the inline file
	ContentType string `json:"content_type,omitempty" bson:"content_type,omitempty"`

	// HasFile is derived on read and never stored
	HasFile bool `json:"has_file" bson:"-"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ItemUpdate carries the mutable item fields. Nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description"`
}

// Empty reports whether the update changes nothing.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil
}
