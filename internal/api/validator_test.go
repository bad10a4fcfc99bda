package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/cookbook/models"
)

func TestRequestValidator(t *testing.T) {
	v := newRequestValidator()
	empty := ""
	long := strings.Repeat("n", 201)

	tests := []struct {
		name   string
		input  interface{}
		fields map[string]string
	}{
		{
			name:  "valid item",
			input: &ItemRequest{Name: "Widget"},
		},
		{
			name:   "missing item name",
			input:  &ItemRequest{},
			fields: map[string]string{"name": "is required"},
		},
		{
			name:   "item name too long",
			input:  &ItemRequest{Name: long},
			fields: map[string]string{"name": "must be at most 200 characters"},
		},
		{
			name:  "update without name",
			input: &models.ItemUpdate{},
		},
		{
			name:   "update with empty name",
			input:  &models.ItemUpdate{Name: &empty},
			fields: map[string]string{"name": "must be at least 1 characters"},
		},
		{
			name:   "short password",
			input:  &RegisterRequest{Username: "bob", Password: "short"},
			fields: map[string]string{"password": "must be at least 8 characters"},
		},
		{
			name:   "unknown role",
			input:  &RegisterRequest{Username: "bob", Password: "long enough", Roles: []models.Role{"root"}},
			fields: map[string]string{"roles[0]": "must be one of: admin user viewer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.Code)
			assert.Equal(t, tt.fields, apiErr.FieldError)
		})
	}
}
