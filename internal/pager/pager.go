// Package pager implements the paginated-browser arithmetic: offsets,
// server-sourced totals, and the windowed page strip with edge shortcuts.
package pager

import (
	"fmt"
)

// WindowWidth is how many page numbers the strip shows around the current page
const WindowWidth = 5

// DefaultPageSize matches the backend's default log page
const DefaultPageSize = 50

// Pager tracks one paginated listing. Total comes from the server response;
// it is never computed by summing locally fetched pages.
type Pager struct {
	Total    int
	PageSize int
	Current  int
}

// New returns a pager positioned on page 1
func New(pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pager{PageSize: pageSize, Current: 1}
}

// Offset is the request offset for the current page
func (p Pager) Offset() int {
	if p.Current <= 1 {
		return 0
	}
	return (p.Current - 1) * p.PageSize
}

// TotalPages derives the page count from the server-reported total
func (p Pager) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// SetPage moves to page n, clamped to valid bounds
func (p *Pager) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if tp := p.TotalPages(); tp > 0 && n > tp {
		n = tp
	}
	p.Current = n
}

// Reset returns to page 1. Any filter or page-size change must call this.
func (p *Pager) Reset() {
	p.Current = 1
}

// HasPrev reports whether a previous page exists
func (p Pager) HasPrev() bool {
	return p.Current > 1
}

// HasNext reports whether a next page exists
func (p Pager) HasNext() bool {
	return p.Current < p.TotalPages()
}

// Summary renders the literal "<total> logs, <count> shown" line.
// count reflects the length the server actually returned.
func (p Pager) Summary(count int) string {
	return fmt.Sprintf("%d logs, %d shown", p.Total, count)
}

// Window describes the rendered page strip
type Window struct {
	Pages            []int
	LeadingEllipsis  bool
	TrailingEllipsis bool
	ShowFirst        bool // shortcut to page 1 before the window
	ShowLast         bool // shortcut to the last page after the window
}

// Window computes the visible page numbers around the current page.
// The strip is WindowWidth wide, shifted inward at either edge, with
// first/last shortcuts and ellipses when the window does not reach the edges.
func (p Pager) Window() Window {
	totalPages := p.TotalPages()
	if totalPages <= 1 {
		return Window{}
	}

	start := p.Current - WindowWidth/2
	if start < 1 {
		start = 1
	}
	end := start + WindowWidth - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start < WindowWidth-1 {
		start = end - WindowWidth + 1
		if start < 1 {
			start = 1
		}
	}

	w := Window{}
	for i := start; i <= end; i++ {
		w.Pages = append(w.Pages, i)
	}
	if start > 1 {
		w.ShowFirst = true
		w.LeadingEllipsis = start > 2
	}
	if end < totalPages {
		w.ShowLast = true
		w.TrailingEllipsis = end < totalPages-1
	}
	return w
}
