// Package auth provides authentication and authorization services for Cookbook.
// It implements JWT-based authentication with role-based access control (RBAC).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/models"
)

var (
	// ErrInvalidToken is returned when a JWT token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a JWT token has expired
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidCredentials is returned when credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserDisabled is returned when a user account is disabled
	ErrUserDisabled = errors.New("user account is disabled")
)

// Issuer is the "iss" claim of every token Cookbook signs.
const Issuer = "cookbook"

// Claims represents JWT custom claims. The subject is the username.
type Claims struct {
	UserID string        `json:"user_id,omitempty"`
	Roles  []models.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

// Token is the OAuth2-style token response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"` // "bearer"
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWTService provides JWT authentication services
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Security.JWTSecret),
		expiration: cfg.Security.JWTExpiration,
	}
}

// Expiration returns the configured token lifetime.
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken generates a new JWT access token for a user
func (s *JWTService) GenerateToken(user *models.User) (*Token, error) {
	if !user.Enabled {
		return nil, ErrUserDisabled
	}

	userID := ""
	if !user.ID.IsZero() {
		userID = user.ID.Hex()
	}
	return s.Sign(user.Username, userID, user.Roles, s.expiration)
}

// Sign issues a token for an arbitrary subject. A non-positive expiration
// falls back to the configured lifetime.
func (s *JWTService) Sign(username, userID string, roles []models.Role, expiration time.Duration) (*Token, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if expiration <= 0 {
		expiration = s.expiration
	}

	now := time.Now()
	expiresAt := now.Add(expiration)

	claims := Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.UTC(),
	}, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares a password with its hash
func ComparePassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}
