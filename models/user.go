package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role names a permission set granted to a user.
type Role = string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// User is an account that can obtain API tokens.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Roles        []Role             `json:"roles" bson:"roles"`
	Enabled      bool               `json:"enabled" bson:"enabled"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
