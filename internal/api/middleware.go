package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/storage"
)

// bodyContentTypes are the request body encodings the API understands.
var bodyContentTypes = []string{
	echo.MIMEApplicationJSON,
	echo.MIMEApplicationForm,
	echo.MIMEMultipartForm,
}

// ValidateContentType middleware ensures that requests with a body use a
// Content-Type the handlers can bind.
func ValidateContentType(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method

		// Only check POST, PUT, PATCH requests
		if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
			// Allow empty body for some requests
			if c.Request().ContentLength == 0 {
				return next(c)
			}

			contentType := c.Request().Header.Get(echo.HeaderContentType)
			for _, allowed := range bodyContentTypes {
				if strings.HasPrefix(contentType, allowed) {
					return next(c)
				}
			}
			return BadRequestError(
				"Invalid Content-Type",
				"Content-Type must be one of "+strings.Join(bodyContentTypes, ", ")+". Got: "+contentType,
			)
		}

		return next(c)
	}
}

// ValidateAcceptHeader middleware ensures that clients can accept JSON responses
func ValidateAcceptHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accept := c.Request().Header.Get("Accept")

		// If no Accept header, assume */*
		if accept == "" {
			return next(c)
		}

		// Check if Accept includes application/json or */*
		if !strings.Contains(accept, "application/json") &&
			!strings.Contains(accept, "*/*") &&
			!strings.Contains(accept, "application/*") {
			return BadRequestError(
				"Invalid Accept header",
				"API only returns JSON. Accept header must include 'application/json' or '*/*'. Got: "+accept,
			)
		}

		return next(c)
	}
}

// ValidateObjectID middleware rejects :id params that are not Mongo ObjectIDs.
func ValidateObjectID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		// If no ID param, skip validation
		if id == "" {
			return next(c)
		}

		if _, err := storage.ParseObjectID(id); err != nil {
			return BadRequestError(
				"Invalid ID format",
				"ID must be a 24 character hex string. Got: "+id,
			)
		}

		return next(c)
	}
}

// paginationParams are accepted on every list endpoint and never treated as filters.
var paginationParams = map[string]bool{"limit": true, "offset": true, "skip": true}

// ValidateQueryParams returns middleware that rejects query parameters
// outside allowed and the pagination parameters.
func ValidateQueryParams(allowed ...string) echo.MiddlewareFunc {
	known := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		known[name] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for name := range c.QueryParams() {
				if paginationParams[name] || known[name] {
					continue
				}
				return BadRequestError(
					"Invalid query parameter",
					"Unsupported filter field: "+name+". Allowed: "+strings.Join(allowed, ", "),
				)
			}
			return next(c)
		}
	}
}

// SecurityHeaders middleware adds security headers to responses
func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Add security headers
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")
		c.Response().Header().Set("X-Frame-Options", "DENY")
		c.Response().Header().Set("X-XSS-Protection", "1; mode=block")
		c.Response().Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		return next(c)
	}
}
