package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/blog"
	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/internal/uploads"
)

// APIError represents a structured API error with HTTP status code.
type APIError struct {
	Code       int                    `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	FieldError map[string]string      `json:"field_errors,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// NewAPIError creates a new API error.
func NewAPIError(code int, message string, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func BadRequestError(message, details string) *APIError {
	return NewAPIError(http.StatusBadRequest, message, details)
}

func NotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Context: map[string]interface{}{"id": id},
	}
}

func ValidationError(message string, fieldErrors map[string]string) *APIError {
	return &APIError{
		Code:       http.StatusBadRequest,
		Message:    message,
		FieldError: fieldErrors,
	}
}

func InternalError(message, details string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message, details)
}

func ConflictError(message, details string) *APIError {
	return NewAPIError(http.StatusConflict, message, details)
}

func UnauthorizedError(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message, "")
}

// storeError translates store sentinels into API errors for resource/id.
func storeError(err error, resource, id string) error {
	var filterErr *storage.UnknownFilterError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrInvalidID):
		return &APIError{
			Code:    http.StatusBadRequest,
			Message: "Invalid ID format",
			Details: err.Error(),
			Context: map[string]interface{}{"id": id},
		}
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, blog.ErrNotFound):
		return NotFoundError(resource, id)
	case errors.Is(err, storage.ErrDuplicate):
		return ConflictError(fmt.Sprintf("%s already exists", resource), err.Error())
	case errors.Is(err, blog.ErrInvalid):
		return BadRequestError("Invalid input", err.Error())
	case errors.As(err, &filterErr):
		return BadRequestError("Invalid filter", err.Error())
	case errors.Is(err, uploads.ErrEmptyName), errors.Is(err, uploads.ErrBadImage):
		return BadRequestError("Invalid file", err.Error())
	case errors.Is(err, uploads.ErrTooLarge):
		return NewAPIError(http.StatusRequestEntityTooLarge, "File too large", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return UnauthorizedError("Incorrect username or password")
	case errors.Is(err, auth.ErrUserDisabled):
		return NewAPIError(http.StatusForbidden, "User account is disabled", "")
	}
	return InternalError(fmt.Sprintf("Failed to access %s", resource), err.Error())
}

// HTTPErrorHandler is a custom error handler for Echo.
func HTTPErrorHandler(err error, c echo.Context) {
	// Don't send response if already sent
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	code := http.StatusInternalServerError

	// Check if it's an Echo HTTPError
	var he *echo.HTTPError
	var ae *APIError
	if errors.As(err, &he) {
		code = he.Code
		apiErr = &APIError{
			Code:    code,
			Message: getHTTPMessage(code),
			Details: fmt.Sprintf("%v", he.Message),
		}
	} else if errors.As(err, &ae) {
		// It's already an APIError
		apiErr = ae
		code = ae.Code
	} else {
		// Generic error
		apiErr = &APIError{
			Code:    code,
			Message: "Internal server error",
			Details: err.Error(),
		}
	}

	if code >= http.StatusInternalServerError {
		logging.L.Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", code,
			"err", err,
		)
	}

	// Don't expose internal errors in production
	if code == http.StatusInternalServerError && !c.Echo().Debug {
		apiErr.Details = "An internal error occurred. Please try again later."
	}

	// HEAD responses carry no body
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, apiErr)
	}
	if err != nil {
		logging.Errorf("failed to write error response: %v", err)
	}
}

// getHTTPMessage returns a user-friendly message for HTTP status codes.
func getHTTPMessage(code int) string {
	messages := map[int]string{
		http.StatusBadRequest:            "Bad request",
		http.StatusUnauthorized:          "Unauthorized",
		http.StatusForbidden:             "Forbidden",
		http.StatusNotFound:              "Resource not found",
		http.StatusMethodNotAllowed:      "Method not allowed",
		http.StatusConflict:              "Conflict",
		http.StatusRequestEntityTooLarge: "Request entity too large",
		http.StatusUnprocessableEntity:   "Unprocessable entity",
		http.StatusTooManyRequests:       "Too many requests",
		http.StatusInternalServerError:   "Internal server error",
		http.StatusBadGateway:            "Bad gateway",
		http.StatusServiceUnavailable:    "Service unavailable",
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}
