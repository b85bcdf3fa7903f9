package pager

import (
	"reflect"
	"testing"
)

func TestOffsetComputation(t *testing.T) {
	p := New(50)
	p.Total = 123
	p.SetPage(2)

	if got := p.Offset(); got != 50 {
		t.Fatalf("Offset() = %d, want 50", got)
	}
	if got := p.TotalPages(); got != 3 {
		t.Fatalf("TotalPages() = %d, want 3", got)
	}
}

func TestSummaryUsesServerTotals(t *testing.T) {
	p := New(50)
	p.Total = 123
	p.SetPage(2)

	// count reflects the actual returned length, not the page size.
	if got := p.Summary(50); got != "123 logs, 50 shown" {
		t.Fatalf("Summary = %q", got)
	}
	if got := p.Summary(23); got != "123 logs, 23 shown" {
		t.Fatalf("Summary last page = %q", got)
	}
}

func TestWindowNearStart(t *testing.T) {
	p := New(50)
	p.Total = 123 // 3 pages
	p.SetPage(2)

	w := p.Window()
	if !reflect.DeepEqual(w.Pages, []int{1, 2, 3}) {
		t.Fatalf("Pages = %v, want [1 2 3]", w.Pages)
	}
	if w.ShowFirst || w.ShowLast || w.LeadingEllipsis || w.TrailingEllipsis {
		t.Fatalf("window covers all pages, no shortcuts expected: %+v", w)
	}
	if !p.HasPrev() || !p.HasNext() {
		t.Fatalf("page 2 of 3 should have both neighbors")
	}
}

func TestWindowMidRange(t *testing.T) {
	p := New(50)
	p.Total = 500 // 10 pages
	p.SetPage(5)

	w := p.Window()
	if !reflect.DeepEqual(w.Pages, []int{3, 4, 5, 6, 7}) {
		t.Fatalf("Pages = %v, want [3 4 5 6 7]", w.Pages)
	}
	if !w.ShowFirst || !w.LeadingEllipsis {
		t.Fatalf("expected first-page shortcut with leading ellipsis: %+v", w)
	}
	if !w.ShowLast || !w.TrailingEllipsis {
		t.Fatalf("expected last-page shortcut with trailing ellipsis: %+v", w)
	}
}

func TestWindowAdjacentEdgesSkipEllipses(t *testing.T) {
	p := New(50)
	p.Total = 350 // 7 pages
	p.SetPage(4)  // window {2..6}: both edges adjacent

	w := p.Window()
	if !reflect.DeepEqual(w.Pages, []int{2, 3, 4, 5, 6}) {
		t.Fatalf("Pages = %v, want [2 3 4 5 6]", w.Pages)
	}
	if !w.ShowFirst || w.LeadingEllipsis {
		t.Fatalf("page 1 is adjacent, shortcut without ellipsis expected: %+v", w)
	}
	if !w.ShowLast || w.TrailingEllipsis {
		t.Fatalf("last page is adjacent, shortcut without ellipsis expected: %+v", w)
	}
}

func TestWindowAtBounds(t *testing.T) {
	p := New(50)
	p.Total = 500
	p.SetPage(1)

	w := p.Window()
	if !reflect.DeepEqual(w.Pages, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("Pages = %v, want [1 2 3 4 5]", w.Pages)
	}
	if p.HasPrev() {
		t.Fatalf("page 1 must disable prev")
	}

	p.SetPage(10)
	w = p.Window()
	if !reflect.DeepEqual(w.Pages, []int{6, 7, 8, 9, 10}) {
		t.Fatalf("Pages = %v, want [6 7 8 9 10]", w.Pages)
	}
	if p.HasNext() {
		t.Fatalf("last page must disable next")
	}
}

func TestSetPageClamps(t *testing.T) {
	p := New(50)
	p.Total = 123
	p.SetPage(99)
	if p.Current != 3 {
		t.Fatalf("SetPage(99) landed on %d, want 3", p.Current)
	}
	p.SetPage(-1)
	if p.Current != 1 {
		t.Fatalf("SetPage(-1) landed on %d, want 1", p.Current)
	}
}

func TestResetReturnsToPageOne(t *testing.T) {
	p := New(50)
	p.Total = 500
	p.SetPage(7)
	p.Reset()
	if p.Current != 1 || p.Offset() != 0 {
		t.Fatalf("Reset left pager at page %d offset %d", p.Current, p.Offset())
	}
}

func TestSinglePageHidesStrip(t *testing.T) {
	p := New(50)
	p.Total = 20
	w := p.Window()
	if len(w.Pages) != 0 {
		t.Fatalf("single page should render no strip, got %v", w.Pages)
	}
}
