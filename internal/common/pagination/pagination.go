// Package pagination implements offset-based pagination shared by the list
// endpoints: query parameter parsing with bounds, offset math, and a generic
// response envelope.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"betpress/pkg/config"
)

// Config bounds the pagination parameters.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_* variables with DefaultConfig fallbacks.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", 100),
	}
}

// Params are the parsed pagination query parameters. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// ParseQueryParams reads page and limit from the request query, applying
// defaults and rejecting out-of-range values.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}
	return params, nil
}

// Offset converts the 1-based page to a database offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Metadata describes the full result set in a paginated response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// BuildMetadata derives Metadata for params over total items. An empty
// result set still reports one page.
func BuildMetadata(params Params, total int64) Metadata {
	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}

// Response is the generic paginated envelope.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps data and metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{Data: data, Pagination: metadata}
}
