package domain

// PaginationParams is the page window requested for a list endpoint.
// Page is 1-indexed; Limit is between 1 and MaxPageLimit.
type PaginationParams struct {
	Page  int
	Limit int
}

// Page window defaults.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// NewPaginationParams builds a window from optional query values.
// Missing or non-positive values fall back to page 1 and DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages of this size cover total rows.
func (p PaginationParams) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
