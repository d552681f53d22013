package pagination

import (
	"math"
	"net/http"
	"strconv"
)

// Defaults applied when a request carries no usable paging parameters.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// Offset returns the index of the first item on the page, saturating at
// math.MaxInt instead of overflowing.
func (p Params) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Normalize replaces non-positive values with defaults. Pages past the end are
// kept as-is; they simply slice to nothing.
func (p Params) Normalize(defaultPageSize int) Params {
	if defaultPageSize < 1 {
		defaultPageSize = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	return p
}

// FromRequest extracts page and page_size from an HTTP request. Missing or
// malformed values fall back to the defaults; page_size is capped at
// maxPageSize.
func FromRequest(r *http.Request, defaultPageSize, maxPageSize int) Params {
	if maxPageSize < 1 {
		maxPageSize = MaxPageSize
	}
	p := Params{Page: DefaultPage, PageSize: defaultPageSize}.Normalize(defaultPageSize)

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if size := r.URL.Query().Get("page_size"); size != "" {
		if v, err := strconv.Atoi(size); err == nil && v > 0 {
			p.PageSize = min(v, maxPageSize)
		}
	}

	return p
}

// TotalPages returns ceil(total/pageSize), or 0 for an empty set.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Slice returns the items on the requested page. A page beyond the last one
// yields an empty, non-nil slice.
func Slice[T any](items []T, p Params) []T {
	if p.PageSize < 1 || p.Page-1 >= TotalPages(len(items), p.PageSize) {
		return []T{}
	}
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
