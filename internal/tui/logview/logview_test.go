package logview

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/notidash/internal/models"
)

func browser() Model {
	return New(context.Background(), nil, ModeBrowser, 50)
}

func withPage(m Model, page models.LogPage) Model {
	m, _ = m.Update(pageLoadedMsg{mode: m.mode, page: &page})
	return m
}

func TestEmptyStateRendersTextAndStopsPaging(t *testing.T) {
	m := withPage(browser(), models.LogPage{Logs: []models.LogEntry{}, Total: 0, Count: 0})

	if !m.Empty() {
		t.Fatalf("surface not empty after zero-total load")
	}
	view := m.View()
	if !strings.Contains(view, "No logs yet") {
		t.Fatalf("empty text missing:\n%s", view)
	}

	// No next/prev requests on an empty listing.
	if cmd := m.NextPage(); cmd != nil {
		t.Fatalf("NextPage issued a request on empty data")
	}
	if cmd := m.PrevPage(); cmd != nil {
		t.Fatalf("PrevPage issued a request on empty data")
	}
}

func TestSummaryUsesServerTotals(t *testing.T) {
	now := time.Now()
	m := withPage(browser(), models.LogPage{
		Logs:  []models.LogEntry{{Category: models.CategoryWeather, Status: models.RunStatusSuccess, Message: "sent", CreatedAt: now}},
		Total: 123,
		Count: 1,
	})

	view := m.View()
	if !strings.Contains(view, "123 logs, 1 shown") {
		t.Fatalf("summary line missing:\n%s", view)
	}
}

func TestPageStripWindow(t *testing.T) {
	m := browser()
	m = withPage(m, models.LogPage{Total: 500, Count: 50})
	m.GoToPage(5)
	m = withPage(m, models.LogPage{Total: 500, Count: 50})

	strip := m.pageStrip()
	for _, want := range []string{"1", "…", "3", "4", "[5]", "6", "7", "10"} {
		if !strings.Contains(strip, want) {
			t.Fatalf("strip missing %q: %s", want, strip)
		}
	}
}

func TestSinglePageHidesStrip(t *testing.T) {
	m := withPage(browser(), models.LogPage{Total: 10, Count: 10})
	if strip := m.pageStrip(); strip != "" {
		t.Fatalf("strip rendered for a single page: %s", strip)
	}
}

func TestNextPrevBoundaries(t *testing.T) {
	m := withPage(browser(), models.LogPage{Total: 123, Count: 50})

	if cmd := m.PrevPage(); cmd != nil {
		t.Fatalf("PrevPage from page 1 issued a request")
	}
	if cmd := m.NextPage(); cmd == nil {
		t.Fatalf("NextPage refused with pages remaining")
	}
	if m.pager.Current != 2 {
		t.Fatalf("current = %d after next", m.pager.Current)
	}

	m.GoToPage(3)
	if cmd := m.NextPage(); cmd != nil {
		t.Fatalf("NextPage past the last page issued a request")
	}
}

func TestGoToPageOnlyReloadsOnMove(t *testing.T) {
	m := withPage(browser(), models.LogPage{Total: 123, Count: 50})
	if cmd := m.GoToPage(1); cmd != nil {
		t.Fatalf("no-op jump issued a request")
	}
	if cmd := m.GoToPage(99); cmd == nil {
		t.Fatalf("clamped jump to last page refused")
	}
	if m.pager.Current != 3 {
		t.Fatalf("clamp landed on %d", m.pager.Current)
	}
}

func TestFilterChangeResetsToPageOne(t *testing.T) {
	m := withPage(browser(), models.LogPage{Total: 500, Count: 50})
	m.GoToPage(4)

	if cmd := m.CycleCategory(); cmd == nil {
		t.Fatalf("filter change did not reload")
	}
	if m.pager.Current != 1 {
		t.Fatalf("filter change left pager on page %d", m.pager.Current)
	}
	if m.Filter().Category != models.Categories()[0] {
		t.Fatalf("category cycle order wrong: %q", m.Filter().Category)
	}
}

func TestStatusCycleReturnsToAll(t *testing.T) {
	m := browser()
	order := []models.RunStatus{
		models.RunStatusSuccess,
		models.RunStatusFail,
		models.RunStatusSkip,
		"",
	}
	for i, want := range order {
		m.CycleStatus()
		if got := m.Filter().Status; got != want {
			t.Fatalf("cycle step %d = %q, want %q", i, got, want)
		}
	}
}

func TestEmbeddedFeedShowsNoStrip(t *testing.T) {
	m := New(context.Background(), nil, ModeEmbedded, 20)
	m = withPage(m, models.LogPage{
		Logs:  []models.LogEntry{{Category: models.CategoryMemo, Status: models.RunStatusSkip, Message: "skipped", CreatedAt: time.Now()}},
		Total: 400,
		Count: 1,
	})
	view := m.View()
	if strings.Contains(view, "logs, ") {
		t.Fatalf("embedded feed rendered pagination summary:\n%s", view)
	}
	if cmd := m.NextPage(); cmd != nil {
		t.Fatalf("embedded feed paged")
	}
}
