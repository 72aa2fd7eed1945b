package core

// PageSize is the number of rows shown per table page.
const PageSize = 5

// TotalPages returns ceil(n / PageSize), never less than 1.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Pager tracks the current table page. Pages are 1-based.
// The zero value is not ready for use; call NewPager.
type Pager struct {
	page int
}

// NewPager returns a pager on page 1.
func NewPager() Pager {
	return Pager{page: 1}
}

// Page returns the current page number.
func (p *Pager) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Next advances one page. It is a no-op on the last page of a store of
// length n and reports whether the page changed.
func (p *Pager) Next(n int) bool {
	if p.Page() >= TotalPages(n) {
		return false
	}
	p.page = p.Page() + 1
	return true
}

// Prev goes back one page. It is a no-op on page 1.
func (p *Pager) Prev() bool {
	if p.Page() <= 1 {
		return false
	}
	p.page = p.Page() - 1
	return true
}

// Set jumps to page, clamped to [1, TotalPages(n)].
func (p *Pager) Set(page, n int) {
	p.page = page
	p.Clamp(n)
}

// Clamp pulls the page back inside [1, TotalPages(n)], e.g. after deletes
// emptied the last page.
func (p *Pager) Clamp(n int) {
	switch total := TotalPages(n); {
	case p.page < 1:
		p.page = 1
	case p.page > total:
		p.page = total
	}
}

// Offset returns the store index of the first visible row.
func (p *Pager) Offset() int {
	return (p.Page() - 1) * PageSize
}

// GlobalIndex maps a visible row offset to its store index.
func (p *Pager) GlobalIndex(row int) int {
	return p.Offset() + row
}

// Page is one rendered page of the store.
type Page struct {
	Number     int
	TotalPages int
	Offset     int
	Records    []Record
	Total      int
}

// HasPrev reports whether a previous page exists.
func (pg Page) HasPrev() bool { return pg.Number > 1 }

// HasNext reports whether a following page exists.
func (pg Page) HasNext() bool { return pg.Number < pg.TotalPages }

// GlobalIndex maps a visible row offset to its store index.
func (pg Page) GlobalIndex(row int) int { return pg.Offset + row }

// PageOf clamps p to the store and returns the visible page.
func PageOf(s *RecordStore, p *Pager) Page {
	n := s.Len()
	p.Clamp(n)
	return Page{
		Number:     p.Page(),
		TotalPages: TotalPages(n),
		Offset:     p.Offset(),
		Records:    s.Slice(p.Offset(), PageSize),
		Total:      n,
	}
}
