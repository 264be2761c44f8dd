package query

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the page size used when none (or an invalid one) is requested
	DefaultPerPage = 20

	// DefaultMaxPerPage is the page size cap used when the caller does not provide one
	DefaultMaxPerPage = 100
)

// PageRequest represents the pagination intent of a single request
type PageRequest struct {
	Page    int
	PerPage int
}

// ParsePageRequest extracts the pagination intent out of raw request parameters.
// Out-of-range and unparsable values are clamped to their defaults, never rejected.
func ParsePageRequest(values url.Values, maxPerPage int) PageRequest {
	if maxPerPage <= 0 {
		maxPerPage = DefaultMaxPerPage
	}

	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(values.Get("per_page"))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return PageRequest{Page: page, PerPage: perPage}
}

// PageMeta represents the pagination metadata returned alongside page data
type PageMeta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// NewPageMeta calculates the page bounds and navigation metadata for a page request
// against a total record count. A page beyond the last one is clamped to the last page.
func NewPageMeta(request PageRequest, total int) *PageMeta {
	totalPages := (total + request.PerPage - 1) / request.PerPage

	page := request.Page
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	meta := &PageMeta{
		Page:       page,
		PerPage:    request.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	if meta.HasNext {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPrev {
		prev := page - 1
		meta.PrevPage = &prev
	}
	return meta
}

// Offset returns the record offset of the page described by the metadata
func (meta *PageMeta) Offset() int {
	return (meta.Page - 1) * meta.PerPage
}
