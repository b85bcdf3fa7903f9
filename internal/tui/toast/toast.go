// Package toast renders transient feedback messages. Toasts stack in
// arrival order and dismiss themselves after a fixed delay; errors
// surface here instead of replacing panel content.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Level selects the toast's visual treatment
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// DismissAfter is how long a toast stays on screen
const DismissAfter = 3 * time.Second

// Toast is one visible message
type Toast struct {
	ID      string
	Level   Level
	Message string
}

// ExpireMsg dismisses one toast by id
type ExpireMsg struct {
	ID string
}

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)
)

// Model holds the visible toast stack
type Model struct {
	toasts []Toast
}

// New returns an empty toast surface
func New() Model {
	return Model{}
}

// Push adds a toast and returns the command that dismisses it later.
// Pushing never replaces existing toasts; they stack.
func (m *Model) Push(level Level, message string) tea.Cmd {
	t := Toast{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
	}
	m.toasts = append(m.toasts, t)
	id := t.ID
	return tea.Tick(DismissAfter, func(time.Time) tea.Msg {
		return ExpireMsg{ID: id}
	})
}

// Update handles dismissal ticks
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if expire, ok := msg.(ExpireMsg); ok {
		m.dismiss(expire.ID)
	}
	return m, nil
}

func (m *Model) dismiss(id string) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// Len reports how many toasts are visible
func (m Model) Len() int {
	return len(m.toasts)
}

// Toasts returns the visible stack in arrival order
func (m Model) Toasts() []Toast {
	return m.toasts
}

// View renders the stack, oldest first
func (m Model) View() string {
	if len(m.toasts) == 0 {
		return ""
	}
	var out string
	for i, t := range m.toasts {
		if i > 0 {
			out += "\n"
		}
		switch t.Level {
		case LevelSuccess:
			out += successStyle.Render(t.Message)
		case LevelError:
			out += errorStyle.Render(t.Message)
		default:
			out += infoStyle.Render(t.Message)
		}
	}
	return out
}
