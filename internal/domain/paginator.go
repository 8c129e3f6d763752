package domain

// DefaultPageSize matches the admin list's default rows per page
const DefaultPageSize = 100

// Paginator maps 1-based page numbers onto offsets of a ranked list
type Paginator struct {
	count    int
	pageSize int
}

// NewPaginator creates a paginator over count rows
func NewPaginator(count, pageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}
	return Paginator{count: count, pageSize: pageSize}
}

// Count returns the number of rows
func (p Paginator) Count() int {
	return p.count
}

// PageSize returns the rows per page
func (p Paginator) PageSize() int {
	return p.pageSize
}

// NumPages returns the number of pages; an empty list still has one page
func (p Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.pageSize - 1) / p.pageSize
}

// Valid reports whether page is within 1..NumPages
func (p Paginator) Valid(page int) bool {
	return page >= 1 && page <= p.NumPages()
}

// Bounds returns the zero-based offset and the number of rows on page.
// Pages outside the valid range yield zero rows.
func (p Paginator) Bounds(page int) (offset, limit int) {
	if !p.Valid(page) {
		return 0, 0
	}
	offset = (page - 1) * p.pageSize
	limit = min(p.pageSize, p.count-offset)
	return offset, max(limit, 0)
}

// Occupancy returns the number of rows on page
func (p Paginator) Occupancy(page int) int {
	_, limit := p.Bounds(page)
	return limit
}

// PageOf returns the page containing the zero-based offset
func (p Paginator) PageOf(offset int) int {
	if offset < 0 {
		return 1
	}
	return min(offset/p.pageSize+1, p.NumPages())
}
