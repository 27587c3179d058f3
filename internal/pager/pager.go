// Package pager slices a result list into fixed-size pages.
package pager

import "github.com/pdiddy/exhibition-curator/pkg/types"

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = types.DefaultPageSize

// Page is one window onto a result list.
type Page struct {
	// Visible holds items [(Number-1)*Size, Number*Size) of the list.
	Visible []types.Item

	// Number is the 1-based page number that was rendered.
	Number int

	// Size is the page size in effect.
	Size int

	// TotalPages is ceil(Total/Size); 0 for an empty list.
	TotalPages int

	// Total is the length of the full list.
	Total int
}

// Offset returns the index of the first visible item in the full list.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// HasNext reports whether Next would advance from this page.
func (p Page) HasNext() bool { return p.Number*p.Size < p.Total }

// HasPrev reports whether Prev would move back from this page.
func (p Page) HasPrev() bool { return p.Number > 1 }

// Paginate returns page number page of items. A page below 1 is treated
// as 1; a page past the end has no visible items.
func Paginate(items []types.Item, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	p := Page{
		Number:     page,
		Size:       pageSize,
		TotalPages: TotalPages(len(items), pageSize),
		Total:      len(items),
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		p.Visible = []types.Item{}
		return p
	}
	end := min(start+pageSize, len(items))
	p.Visible = items[start:end]
	return p
}

// TotalPages returns ceil(n/pageSize).
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return (n + pageSize - 1) / pageSize
}

// Prev returns the page before page, never less than 1.
func Prev(page int) int {
	return max(1, page-1)
}

// Next returns the page after page, or page itself when page already
// shows the last of n items.
func Next(page, pageSize, n int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page*pageSize >= n {
		return page
	}
	return page + 1
}

// Clamp limits page to [1, max(1, totalPages)].
func Clamp(page, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}
