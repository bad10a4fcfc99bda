package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/blog"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/internal/uploads"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		want     string
	}{
		{
			name: "error with details",
			apiError: &APIError{
				Code:    400,
				Message: "Bad Request",
				Details: "Invalid JSON format",
			},
			want: "Bad Request: Invalid JSON format",
		},
		{
			name: "error without details",
			apiError: &APIError{
				Code:    404,
				Message: "Not Found",
			},
			want: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBadRequestError(t *testing.T) {
	err := BadRequestError("Invalid input", "Field 'name' is required")

	if err.Code != http.StatusBadRequest {
		t.Errorf("BadRequestError().Code = %v, want %v", err.Code, http.StatusBadRequest)
	}
	if err.Message != "Invalid input" {
		t.Errorf("BadRequestError().Message = %v, want %v", err.Message, "Invalid input")
	}
	if err.Details != "Field 'name' is required" {
		t.Errorf("BadRequestError().Details = %v, want %v", err.Details, "Field 'name' is required")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("Item", "665f1c2e9b1d4a0c8e4b7a10")

	if err.Code != http.StatusNotFound {
		t.Errorf("NotFoundError().Code = %v, want %v", err.Code, http.StatusNotFound)
	}
	if err.Message != "Item not found" {
		t.Errorf("NotFoundError().Message = %v, want %v", err.Message, "Item not found")
	}
	if err.Context == nil {
		t.Error("NotFoundError().Context is nil, want non-nil")
	}
	if id, ok := err.Context["id"].(string); !ok || id != "665f1c2e9b1d4a0c8e4b7a10" {
		t.Errorf("NotFoundError().Context['id'] = %v, want '665f1c2e9b1d4a0c8e4b7a10'", id)
	}
}

func TestValidationError(t *testing.T) {
	fieldErrors := map[string]string{
		"name":  "is required",
		"title": "must be at most 200 characters",
	}
	err := ValidationError("Validation failed", fieldErrors)

	if err.Code != http.StatusBadRequest {
		t.Errorf("ValidationError().Code = %v, want %v", err.Code, http.StatusBadRequest)
	}
	if err.Message != "Validation failed" {
		t.Errorf("ValidationError().Message = %v, want %v", err.Message, "Validation failed")
	}
	if len(err.FieldError) != 2 {
		t.Errorf("ValidationError().FieldError length = %v, want 2", len(err.FieldError))
	}
	if err.FieldError["name"] != "is required" {
		t.Errorf("ValidationError().FieldError['name'] = %v, want 'is required'", err.FieldError["name"])
	}
}

func TestInternalError(t *testing.T) {
	err := InternalError("Database connection failed", "Connection timeout")

	if err.Code != http.StatusInternalServerError {
		t.Errorf("InternalError().Code = %v, want %v", err.Code, http.StatusInternalServerError)
	}
	if err.Message != "Database connection failed" {
		t.Errorf("InternalError().Message = %v, want %v", err.Message, "Database connection failed")
	}
	if err.Details != "Connection timeout" {
		t.Errorf("InternalError().Details = %v, want %v", err.Details, "Connection timeout")
	}
}

func TestConflictError(t *testing.T) {
	err := ConflictError("Resource conflict", "Resource already exists")

	if err.Code != http.StatusConflict {
		t.Errorf("ConflictError().Code = %v, want %v", err.Code, http.StatusConflict)
	}
	if err.Message != "Resource conflict" {
		t.Errorf("ConflictError().Message = %v, want %v", err.Message, "Resource conflict")
	}
	if err.Details != "Resource already exists" {
		t.Errorf("ConflictError().Details = %v, want %v", err.Details, "Resource already exists")
	}
}

func TestGetHTTPMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"Bad Request", http.StatusBadRequest, "Bad request"},
		{"Not Found", http.StatusNotFound, "Resource not found"},
		{"Internal Server Error", http.StatusInternalServerError, "Internal server error"},
		{"Unknown Code", 999, http.StatusText(999)}, // Falls back to http.StatusText for unknown codes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getHTTPMessage(tt.code); got != tt.want {
				t.Errorf("getHTTPMessage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid object id", fmt.Errorf("parse: %w", storage.ErrInvalidID), http.StatusBadRequest, "Invalid ID format"},
		{"mongo not found", storage.ErrNotFound, http.StatusNotFound, "Item not found"},
		{"sql not found", fmt.Errorf("post 7: %w", blog.ErrNotFound), http.StatusNotFound, "Item not found"},
		{"duplicate", fmt.Errorf("insert: %w", storage.ErrDuplicate), http.StatusConflict, "Item already exists"},
		{"constraint", blog.ErrInvalid, http.StatusBadRequest, "Invalid input"},
		{"unknown filter", &storage.UnknownFilterError{Field: "$where"}, http.StatusBadRequest, "Invalid filter"},
		{"bad image", uploads.ErrBadImage, http.StatusBadRequest, "Invalid file"},
		{"too large", uploads.ErrTooLarge, http.StatusRequestEntityTooLarge, "File too large"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{"disabled", auth.ErrUserDisabled, http.StatusForbidden, "User account is disabled"},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError, "Failed to access Item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *APIError
			if !errors.As(storeError(tt.err, "Item", "abc"), &apiErr) {
				t.Fatalf("storeError() did not return an *APIError")
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("storeError().Code = %v, want %v", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("storeError().Message = %v, want %v", apiErr.Message, tt.wantMsg)
			}
		})
	}

	if storeError(nil, "Item", "abc") != nil {
		t.Error("storeError(nil) should be nil")
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		debug       bool
		wantCode    int
		wantMessage string
		wantDetails string
	}{
		{
			name:        "api error passes through",
			err:         NotFoundError("Task", "x"),
			wantCode:    http.StatusNotFound,
			wantMessage: "Task not found",
		},
		{
			name:        "echo http error",
			err:         echo.NewHTTPError(http.StatusUnauthorized, "token has expired"),
			wantCode:    http.StatusUnauthorized,
			wantMessage: "Unauthorized",
			wantDetails: "token has expired",
		},
		{
			name:        "internal details hidden",
			err:         errors.New("dial tcp: refused"),
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantDetails: "An internal error occurred. Please try again later.",
		},
		{
			name:        "internal details shown in debug",
			err:         errors.New("dial tcp: refused"),
			debug:       true,
			wantCode:    http.StatusInternalServerError,
			wantMessage: "Internal server error",
			wantDetails: "dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Debug = tt.debug
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			HTTPErrorHandler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %v, want %v", rec.Code, tt.wantCode)
			}
			var body APIError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %v, want %v", body.Message, tt.wantMessage)
			}
			if body.Details != tt.wantDetails {
				t.Errorf("details = %v, want %v", body.Details, tt.wantDetails)
			}
		})
	}
}
