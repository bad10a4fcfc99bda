package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageRule describes how one family of list endpoints reads its window.
type pageRule struct {
	offsetParam  string
	defaultLimit int
	maxLimit     int
}

var (
	// limit/offset, default 100, capped at 1000
	offsetPages = pageRule{offsetParam: "offset", defaultLimit: 100, maxLimit: 1000}
	// skip/limit, default 10, capped at 100
	skipPages = pageRule{offsetParam: "skip", defaultLimit: 10, maxLimit: 100}
)

// parse reads the limit and the offset parameter named by the rule. Missing,
// negative or non-numeric values fall back to the defaults.
func (r pageRule) parse(c echo.Context) (limit, offset int) {
	limit = r.defaultLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
			if limit > r.maxLimit {
				limit = r.maxLimit
			}
		}
	}

	offset = 0
	if offsetParam := c.QueryParam(r.offsetParam); offsetParam != "" {
		if parsed, err := strconv.Atoi(offsetParam); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// parsePagination parses limit and offset from query parameters.
// Default limit is 100, default offset is 0.
// Maximum limit is 1000 to prevent excessive memory usage.
func parsePagination(c echo.Context) (limit, offset int) {
	return offsetPages.parse(c)
}

// parseSkipLimit parses skip and limit for the items listing.
func parseSkipLimit(c echo.Context) (skip, limit int) {
	limit, skip = skipPages.parse(c)
	return skip, limit
}

// paginateSlice applies pagination to an in-memory slice.
func paginateSlice[T any](items []T, limit, offset int) []T {
	// Handle edge cases
	if offset >= len(items) {
		return []T{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
