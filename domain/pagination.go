package domain

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (MaxPage-1)*MaxPageLimit inside an int32 OFFSET.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// PageRequest selects one page of a user's aggregates. Page is 1-based.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to 1 <= page <= MaxPage and 1 <= limit <= MaxPageLimit.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items   []T
	Total   int
	Request PageRequest
}

// Pagination is the metadata clients receive alongside a page.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func (p Page[T]) Pagination() Pagination {
	req := p.Request.Normalize()
	totalPages := 0
	if p.Total > 0 {
		totalPages = (p.Total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		Page:            req.Page,
		Limit:           req.Limit,
		Total:           p.Total,
		TotalPages:      totalPages,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{Items: items, Total: p.Total, Request: p.Request}
}
