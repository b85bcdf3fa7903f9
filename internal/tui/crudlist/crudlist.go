// Package crudlist is the shared list surface behind jobs, reminders,
// watchlists and alerts: a cursor, a confirm-before-delete state
// machine, and row reordering. Data operations stay with the caller;
// after any mutation the caller reloads the list instead of splicing
// rows locally.
package crudlist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Item is one row. Rows render themselves so each list keeps its own
// column shape.
type Item interface {
	ItemID() string
	Row() string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	confirmStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// Model is one list's state
type Model struct {
	title     string
	emptyText string
	items     []Item
	cursor    int

	confirming bool
	pendingID  string
}

// New creates a list with its title and empty-state line
func New(title, emptyText string) Model {
	return Model{title: title, emptyText: emptyText}
}

// SetItems replaces the rows, keeping the cursor in bounds and
// cancelling any pending delete whose row disappeared.
func (m *Model) SetItems(items []Item) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.confirming && m.findID(m.pendingID) < 0 {
		m.CancelDelete()
	}
}

// Items returns the current rows
func (m Model) Items() []Item {
	return m.items
}

// Len reports the row count
func (m Model) Len() int {
	return len(m.items)
}

// Cursor reports the selected index
func (m Model) Cursor() int {
	return m.cursor
}

// CursorUp moves the selection up one row
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// CursorDown moves the selection down one row
func (m *Model) CursorDown() {
	if m.cursor < len(m.items)-1 {
		m.cursor++
	}
}

// Selected returns the row under the cursor
func (m Model) Selected() (Item, bool) {
	if len(m.items) == 0 {
		return nil, false
	}
	return m.items[m.cursor], true
}

// RequestDelete arms the confirm prompt for the selected row. Nothing
// is deleted until ConfirmDelete.
func (m *Model) RequestDelete() bool {
	item, ok := m.Selected()
	if !ok {
		return false
	}
	m.confirming = true
	m.pendingID = item.ItemID()
	return true
}

// Confirming reports whether a delete prompt is showing
func (m Model) Confirming() bool {
	return m.confirming
}

// ConfirmDelete resolves the prompt and returns the row to delete.
// The row stays visible until the caller's reload lands.
func (m *Model) ConfirmDelete() (Item, bool) {
	if !m.confirming {
		return nil, false
	}
	idx := m.findID(m.pendingID)
	m.confirming = false
	m.pendingID = ""
	if idx < 0 {
		return nil, false
	}
	return m.items[idx], true
}

// CancelDelete dismisses the prompt without deleting
func (m *Model) CancelDelete() {
	m.confirming = false
	m.pendingID = ""
}

// MoveUp swaps the selected row with the one above and returns the new
// id order for the caller to persist. The caller reloads on a failed
// write rather than swapping back.
func (m *Model) MoveUp() ([]string, bool) {
	if m.cursor <= 0 || len(m.items) < 2 {
		return nil, false
	}
	m.items[m.cursor-1], m.items[m.cursor] = m.items[m.cursor], m.items[m.cursor-1]
	m.cursor--
	return m.IDs(), true
}

// MoveDown swaps the selected row with the one below
func (m *Model) MoveDown() ([]string, bool) {
	if m.cursor >= len(m.items)-1 {
		return nil, false
	}
	m.items[m.cursor], m.items[m.cursor+1] = m.items[m.cursor+1], m.items[m.cursor]
	m.cursor++
	return m.IDs(), true
}

// IDs returns row ids in display order
func (m Model) IDs() []string {
	ids := make([]string, 0, len(m.items))
	for _, item := range m.items {
		ids = append(ids, item.ItemID())
	}
	return ids
}

func (m Model) findID(id string) int {
	for i, item := range m.items {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

// View renders the list
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render(m.emptyText))
		return b.String()
	}

	for i, item := range m.items {
		row := item.Row()
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if m.confirming {
		if item, ok := m.Selected(); ok && item.ItemID() == m.pendingID {
			b.WriteString(confirmStyle.Render("Delete this entry? (y/n)"))
		}
	}
	return b.String()
}
