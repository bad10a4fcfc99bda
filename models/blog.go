package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BlogUser is a row in the blog "users" table. Users are created on first login.
type BlogUser struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64            `json:"id" bun:"id,pk,autoincrement"`
	Username  string           `json:"username" bun:"username,notnull,unique"`
	Interests []map[string]any `json:"interests" bun:"interests,type:jsonb,notnull"`

	Posts []*Post `json:"-" bun:"rel:has-many,join:id=user_id"`
}

// Post is a row in the "posts" table.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        int64     `json:"id" bun:"id,pk,autoincrement"`
	Title     string    `json:"title" bun:"title,notnull,type:varchar(200)"`
	Content   string    `json:"content" bun:"content,notnull"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
	UserID    int64     `json:"user_id" bun:"user_id,notnull"`

	Comments []*Comment `json:"comments" bun:"rel:has-many,join:id=post_id"`
}

// Comment is a row in the "comments" table.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID        int64     `json:"id" bun:"id,pk,autoincrement"`
	Content   string    `json:"content" bun:"content,notnull,type:varchar(500)"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
	PostID    int64     `json:"post_id" bun:"post_id,notnull"`
}

const (
	// MaxPostTitleLength bounds Post.Title.
	MaxPostTitleLength = 200
	// MaxCommentLength bounds Comment.Content.
	MaxCommentLength = 500
)
