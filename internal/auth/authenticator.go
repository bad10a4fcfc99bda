package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

// UserStore is the subset of storage the authenticator needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	CountUsers(ctx context.Context) (int64, error)
	RecordLogin(ctx context.Context, username string, at time.Time) error
}

// Authenticator checks credentials against stored users and issues tokens.
type Authenticator struct {
	users UserStore
	jwt   *JWTService
}

// NewAuthenticator creates an authenticator.
func NewAuthenticator(users UserStore, jwtService *JWTService) *Authenticator {
	return &Authenticator{users: users, jwt: jwtService}
}

// Authenticate verifies username and password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}

	if err := a.users.RecordLogin(ctx, user.Username, time.Now()); err != nil {
		logging.Warnf("failed to record login for %s: %v", user.Username, err)
	}
	return user, nil
}

// Login authenticates and returns a signed token for the user.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Token, *models.User, error) {
	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	token, err := a.jwt.GenerateToken(user)
	if err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

// Register creates an enabled user with a bcrypt password hash. Roles
// default to RoleUser.
func (a *Authenticator) Register(ctx context.Context, username, password string, roles []models.Role) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		Enabled:      true,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureBootstrapAdmin creates an admin account when no users exist and a
// password is configured. It reports whether a user was created.
func (a *Authenticator) EnsureBootstrapAdmin(ctx context.Context, username, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	if username == "" {
		username = "admin"
	}

	n, err := a.users.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	if _, err := a.Register(ctx, username, password, []models.Role{models.RoleAdmin}); err != nil {
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	logging.Infof("created bootstrap admin user %q", username)
	return true, nil
}
