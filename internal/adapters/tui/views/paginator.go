package views

import "sortable/internal/domain"

// Paginator tracks a cursor over a ranked list shown one page at a time.
// The cursor is a zero-based display offset; the page always follows it.
type Paginator struct {
	pages  domain.Paginator
	cursor int
}

// NewPaginator creates a paginator over an empty list
func NewPaginator(pageSize int) *Paginator {
	return &Paginator{pages: domain.NewPaginator(0, pageSize)}
}

// SetTotal sets the number of entries, keeping the cursor in range
func (p *Paginator) SetTotal(total int) {
	p.pages = domain.NewPaginator(total, p.pages.PageSize())
	p.SetCursor(p.cursor)
}

// Total returns the number of entries
func (p *Paginator) Total() int {
	return p.pages.Count()
}

// PageSize returns the entries per page
func (p *Paginator) PageSize() int {
	return p.pages.PageSize()
}

// Cursor returns the current cursor position (absolute offset)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor sets the cursor position, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(min(pos, p.pages.Count()-1), 0)
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor > 0 {
		p.cursor--
		return true
	}
	return false
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor < p.pages.Count()-1 {
		p.cursor++
		return true
	}
	return false
}

// CursorInPage returns the cursor position relative to the current page
func (p *Paginator) CursorInPage() int {
	offset, _ := p.pages.Bounds(p.CurrentPage())
	return p.cursor - offset
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	return p.pages.NumPages()
}

// CurrentPage returns the 1-based page holding the cursor
func (p *Paginator) CurrentPage() int {
	return p.pages.PageOf(p.cursor)
}

// Bounds returns the offset and row count of the current page
func (p *Paginator) Bounds() (offset, limit int) {
	return p.pages.Bounds(p.CurrentPage())
}

// GoToPage puts the cursor on the first row of page. It reports false for
// pages outside the list.
func (p *Paginator) GoToPage(page int) bool {
	if !p.pages.Valid(page) {
		return false
	}
	offset, _ := p.pages.Bounds(page)
	p.cursor = offset
	return true
}

// NextPage moves to the next page
func (p *Paginator) NextPage() bool {
	return p.GoToPage(p.CurrentPage() + 1)
}

// PrevPage moves to the previous page
func (p *Paginator) PrevPage() bool {
	return p.GoToPage(p.CurrentPage() - 1)
}

// Reset resets the paginator to its initial state
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pages = domain.NewPaginator(0, p.pages.PageSize())
}
