package models

import "strings"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListFilters carries the optional predicates, sort choice and pagination
// window for a listing query. Substring filters are case-insensitive
// "contains"; Role is an exact match.
type ListFilters struct {
	Name    string
	Email   string
	Address string
	Role    string

	SortBy    string
	SortOrder string

	Page  int
	Limit int
}

// Normalize clamps pagination to sane values and lowercases the sort
// direction. Unknown sort fields are resolved against an allow-list by the
// repository, never interpolated as-is.
func (f *ListFilters) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder != "desc" {
		f.SortOrder = "asc"
	}
}

// Offset returns the row offset for the current page.
func (f ListFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination is the envelope metadata returned with every listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
