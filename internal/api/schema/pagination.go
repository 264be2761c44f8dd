package schema

import (
	"github.com/scribehq/blog-server/internal/query"
)

// PaginatedResponse represents a unified paginated API response
type PaginatedResponse[T any] struct {
	Data []T             `json:"data"`
	Meta *query.PageMeta `json:"meta"`
}

// BuildPaginatedResponse builds a unified paginated API response
func BuildPaginatedResponse[T any](data []T, meta *query.PageMeta) *PaginatedResponse[T] {
	return &PaginatedResponse[T]{
		Data: data,
		Meta: meta,
	}
}
