// Package paginator implements 1-based page arithmetic shared by listings.
package paginator

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginateQuery is the page request of a listing.
type PaginateQuery struct {
	Page  int
	Limit int
}

// Adjust fills defaults and clamps Limit to [1, max].
func (q *PaginateQuery) Adjust(defaultLimit, max int) {
	if max <= 0 {
		max = MaxLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if defaultLimit > max {
		defaultLimit = max
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Limit == 0:
		q.Limit = defaultLimit
	case q.Limit < 1:
		q.Limit = 1
	case q.Limit > max:
		q.Limit = max
	}
}

// Offset is the number of rows skipped before the page.
func (q PaginateQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Clamp moves Page to the last non-empty page when it lies beyond total.
// It reports whether the page changed.
func (q *PaginateQuery) Clamp(total int) bool {
	last := LastPage(total, q.Limit)
	if q.Page > last {
		q.Page = last
		return true
	}
	return false
}

// LastPage is the last non-empty page for total rows, 1 when empty.
func LastPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Paginator describes the page that was returned.
type Paginator struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// ToPaginator builds the page description for count rows of total.
func (q PaginateQuery) ToPaginator(total, count int) Paginator {
	return Paginator{
		Total:       total,
		Count:       count,
		PerPage:     q.Limit,
		CurrentPage: q.Page,
		LastPage:    LastPage(total, q.Limit),
	}
}
