package crudlist

import (
	"strings"
	"testing"
)

type row struct {
	id   string
	text string
}

func (r row) ItemID() string { return r.id }
func (r row) Row() string    { return r.text }

func rows(ids ...string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, row{id: id, text: "entry " + id})
	}
	return items
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := New("Reminders", "No reminders")
	m.SetItems(rows("a", "b"))
	m.CursorDown()

	if !m.RequestDelete() {
		t.Fatalf("RequestDelete refused with a selection")
	}
	if !m.Confirming() {
		t.Fatalf("prompt not armed")
	}
	// The row is still there until the caller's delete lands.
	if m.Len() != 2 {
		t.Fatalf("row vanished before confirmation")
	}

	item, ok := m.ConfirmDelete()
	if !ok || item.ItemID() != "b" {
		t.Fatalf("confirmed item = %v, %v", item, ok)
	}
	if m.Confirming() {
		t.Fatalf("prompt survived confirmation")
	}
}

func TestCancelDeleteKeepsRow(t *testing.T) {
	m := New("Jobs", "No jobs")
	m.SetItems(rows("a"))
	m.RequestDelete()
	m.CancelDelete()

	if m.Confirming() {
		t.Fatalf("prompt survived cancel")
	}
	if _, ok := m.ConfirmDelete(); ok {
		t.Fatalf("cancelled prompt still confirmed")
	}
	if m.Len() != 1 {
		t.Fatalf("cancel lost the row")
	}
}

func TestReloadCancelsOrphanedPrompt(t *testing.T) {
	m := New("Alerts", "No alerts")
	m.SetItems(rows("a", "b"))
	m.CursorDown()
	m.RequestDelete()

	// A reload lands without the pending row: the prompt must drop.
	m.SetItems(rows("a"))
	if m.Confirming() {
		t.Fatalf("prompt survived a reload that removed its row")
	}
}

func TestMoveReturnsNewOrder(t *testing.T) {
	m := New("Watchlist", "Empty")
	m.SetItems(rows("42", "7", "19"))
	m.CursorDown()

	ids, ok := m.MoveUp()
	if !ok {
		t.Fatalf("MoveUp refused")
	}
	want := []string{"7", "42", "19"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
	// Cursor follows the moved row.
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d after move up", m.Cursor())
	}

	if _, ok := m.MoveUp(); ok {
		t.Fatalf("moved above the first row")
	}
}

func TestCursorClampsOnShrink(t *testing.T) {
	m := New("Reminders", "No reminders")
	m.SetItems(rows("a", "b", "c"))
	m.CursorDown()
	m.CursorDown()

	m.SetItems(rows("a"))
	if m.Cursor() != 0 {
		t.Fatalf("cursor = %d after shrink", m.Cursor())
	}
	if item, ok := m.Selected(); !ok || item.ItemID() != "a" {
		t.Fatalf("selection broken after shrink")
	}
}

func TestEmptyView(t *testing.T) {
	m := New("Reminders", "No reminders yet")
	view := m.View()
	if !strings.Contains(view, "No reminders yet") {
		t.Fatalf("empty text missing:\n%s", view)
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("selection on empty list")
	}
	if m.RequestDelete() {
		t.Fatalf("delete armed on empty list")
	}
}
