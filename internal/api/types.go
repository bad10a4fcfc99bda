package api

import (
	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/models"
)

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ItemsResponse is one page of items.
type ItemsResponse struct {
	Count int            `json:"count"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
	Items []*models.Item `json:"items"`
}

// ItemRequest is the JSON body for creating or replacing an item.
type ItemRequest struct {
	Name        string `json:"name" form:"name" validate:"required,max=200"`
	Description string `json:"description" form:"description"`
}

// TasksResponse is one page of tasks.
type TasksResponse struct {
	Count  int            `json:"count"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Tasks  []*models.Task `json:"tasks"`
}

// TaskCreatedResponse is returned by POST /tasks.
type TaskCreatedResponse struct {
	TaskID string `json:"task_id"`
}

// TokenResponse is the OAuth2 password-flow response of POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginRequest is the JSON body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse carries a token and the user it was issued to.
type LoginResponse struct {
	*auth.Token
	ExpiresIn int64        `json:"expires_in"` // seconds
	User      *models.User `json:"user"`
}

// RegisterRequest is the JSON body of POST /auth/register.
type RegisterRequest struct {
	Username string        `json:"username" validate:"required,min=3,max=64"`
	Password string        `json:"password" validate:"required,min=8"`
	Roles    []models.Role `json:"roles" validate:"omitempty,dive,oneof=admin user viewer"`
}

// UsersResponse lists accounts for admins.
type UsersResponse struct {
	Count int            `json:"count"`
	Users []*models.User `json:"users"`
}

// UploadResponse describes a stored upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Message  string `json:"message"`
}

// BlogLoginRequest is the JSON body of POST /blog/login.
type BlogLoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

// PostRequest is the JSON body of POST /blog/posts.
type PostRequest struct {
	UserID  int64  `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// CommentRequest is the JSON body of POST /blog/posts/:id/comments.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HealthResponse reports the state of the service and its backends.
type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
