package toast

import (
	"strings"
	"testing"
)

func TestPushStacksInsteadOfReplacing(t *testing.T) {
	m := New()
	if cmd := m.Push(LevelSuccess, "setting saved"); cmd == nil {
		t.Fatalf("expected dismissal command")
	}
	if cmd := m.Push(LevelError, "quote lookup failed"); cmd == nil {
		t.Fatalf("expected dismissal command")
	}

	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	toasts := m.Toasts()
	if toasts[0].Message != "setting saved" || toasts[1].Message != "quote lookup failed" {
		t.Fatalf("arrival order lost: %+v", toasts)
	}
	if toasts[0].ID == toasts[1].ID {
		t.Fatalf("toast ids collide")
	}

	view := m.View()
	if !strings.Contains(view, "setting saved") || !strings.Contains(view, "quote lookup failed") {
		t.Fatalf("view missing messages: %q", view)
	}
}

func TestExpireDismissesOnlyItsToast(t *testing.T) {
	m := New()
	m.Push(LevelInfo, "first")
	m.Push(LevelInfo, "second")
	firstID := m.Toasts()[0].ID

	m, _ = m.Update(ExpireMsg{ID: firstID})
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if m.Toasts()[0].Message != "second" {
		t.Fatalf("wrong toast survived: %+v", m.Toasts())
	}

	// Expiring an already-gone id is a no-op.
	m, _ = m.Update(ExpireMsg{ID: firstID})
	if m.Len() != 1 {
		t.Fatalf("stale expire removed a live toast")
	}
}

func TestEmptyViewIsEmpty(t *testing.T) {
	if view := New().View(); view != "" {
		t.Fatalf("empty surface rendered %q", view)
	}
}
