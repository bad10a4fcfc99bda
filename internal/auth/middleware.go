package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/models"
)

const (
	// ContextKeyClaims is the key for storing JWT claims in context
	ContextKeyClaims = "claims"

	// AnonymousUser is reported by GetUsername when auth is disabled.
	AnonymousUser = "anonymous"
)

// Middleware is the authentication middleware
type Middleware struct {
	jwtService *JWTService
	config     *config.Config
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, jwtService *JWTService) *Middleware {
	if jwtService == nil {
		jwtService = NewJWTService(cfg)
	}
	return &Middleware{
		jwtService: jwtService,
		config:     cfg,
	}
}

// RequireAuth is middleware that requires JWT authentication
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Skip if auth is disabled
		if !m.config.Security.AuthEnabled {
			return next(c)
		}

		// Extract token from Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		// Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
		}

		claims, err := m.jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// RequireRole is middleware that requires a specific role
func (m *Middleware) RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip if auth is disabled
			if !m.config.Security.AuthEnabled {
				return next(c)
			}

			if _, ok := GetClaims(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			for _, required := range roles {
				if HasRole(c, required) {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

// RequireAdmin is middleware that requires admin role
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(models.RoleAdmin)(next)
}

// RequireWrite is middleware that requires write permissions (admin or user role).
// Viewers are read-only.
func (m *Middleware) RequireWrite(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(models.RoleAdmin, models.RoleUser)(next)
}

// GetClaims extracts JWT claims from Echo context
func GetClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	return claims, ok
}

// GetUsername returns the authenticated username, or AnonymousUser when the
// request carried no claims.
func GetUsername(c echo.Context) string {
	claims, ok := GetClaims(c)
	if !ok {
		return AnonymousUser
	}
	return claims.Username()
}

// HasRole checks if the current user has a specific role
func HasRole(c echo.Context, role models.Role) bool {
	claims, ok := GetClaims(c)
	if !ok {
		return false
	}

	for _, r := range claims.Roles {
		if r == role {
			return true
		}
	}
	return false
}
