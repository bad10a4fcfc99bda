package api

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name        string
		queryParams map[string]string
		wantLimit   int
		wantOffset  int
	}{
		{
			name:        "no parameters - use defaults",
			queryParams: map[string]string{},
			wantLimit:   100,
			wantOffset:  0,
		},
		{
			name: "custom limit and offset",
			queryParams: map[string]string{
				"limit":  "50",
				"offset": "25",
			},
			wantLimit:  50,
			wantOffset: 25,
		},
		{
			name: "limit exceeds max - cap at 1000",
			queryParams: map[string]string{
				"limit": "5000",
			},
			wantLimit:  1000,
			wantOffset: 0,
		},
		{
			name: "negative limit - use default",
			queryParams: map[string]string{
				"limit": "-10",
			},
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name: "negative offset - use default",
			queryParams: map[string]string{
				"offset": "-5",
			},
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name: "invalid limit - use default",
			queryParams: map[string]string{
				"limit": "abc",
			},
			wantLimit:  100,
			wantOffset: 0,
		},
		{
			name: "zero limit - use default",
			queryParams: map[string]string{
				"limit": "0",
			},
			wantLimit:  100,
			wantOffset: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest("GET", "/", nil)
			q := req.URL.Query()
			for k, v := range tt.queryParams {
				q.Add(k, v)
			}
			req.URL.RawQuery = q.Encode()
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			gotLimit, gotOffset := parsePagination(c)

			if gotLimit != tt.wantLimit {
				t.Errorf("parsePagination() limit = %v, want %v", gotLimit, tt.wantLimit)
			}
			if gotOffset != tt.wantOffset {
				t.Errorf("parsePagination() offset = %v, want %v", gotOffset, tt.wantOffset)
			}
		})
	}
}

func TestParseSkipLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, 10},
		{"custom", "skip=20&limit=5", 20, 5},
		{"limit capped at 100", "limit=500", 0, 100},
		{"negative skip", "skip=-1", 0, 10},
		{"garbage", "skip=x&limit=y", 0, 10},
		{"offset is not skip", "offset=30", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			gotSkip, gotLimit := parseSkipLimit(c)

			if gotSkip != tt.wantSkip {
				t.Errorf("parseSkipLimit() skip = %v, want %v", gotSkip, tt.wantSkip)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("parseSkipLimit() limit = %v, want %v", gotLimit, tt.wantLimit)
			}
		})
	}
}

func TestPaginateSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	tests := []struct {
		name      string
		limit     int
		offset    int
		wantCount int
		wantFirst string
	}{
		{"first page", 5, 0, 5, "a"},
		{"second page", 5, 5, 5, "f"},
		{"partial page", 5, 8, 2, "i"},
		{"offset beyond length", 5, 15, 0, ""},
		{"limit exceeds length", 100, 0, 10, "a"},
		{"single item", 1, 3, 1, "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := paginateSlice(items, tt.limit, tt.offset)

			if len(result) != tt.wantCount {
				t.Errorf("paginateSlice() count = %v, want %v", len(result), tt.wantCount)
			}
			if tt.wantCount > 0 && result[0] != tt.wantFirst {
				t.Errorf("paginateSlice() first = %v, want %v", result[0], tt.wantFirst)
			}
		})
	}
}
