package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notidash/internal/models"
	"github.com/notidash/internal/tui/statuspanel"
	"github.com/notidash/pkg/logger"
)

func testApp() Model {
	return New(context.Background(), nil, nil, Config{}, logger.New(logger.Config{Level: "disabled", Format: "json"}))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m := testApp()
	if m.tab != TabOverview {
		t.Fatalf("initial tab = %v", m.tab)
	}
	m, _ = update(t, m, key("tab"))
	if m.tab != TabModules {
		t.Fatalf("tab after cycle = %v", m.tab)
	}
	for i := 0; i < int(tabCount)-1; i++ {
		m, _ = update(t, m, key("tab"))
	}
	if m.tab != TabOverview {
		t.Fatalf("cycle did not wrap: %v", m.tab)
	}

	m, _ = update(t, m, key("5"))
	if m.tab != TabReminders {
		t.Fatalf("numeric jump landed on %v", m.tab)
	}
}

func TestToastMessagesStackGlobally(t *testing.T) {
	m := testApp()
	m, cmd := update(t, m, statuspanel.ToastMsg{Error: true, Message: "toggle failed"})
	if cmd == nil {
		t.Fatalf("toast push returned no expiry command")
	}
	m, _ = update(t, m, statuspanel.ToastMsg{Message: "saved"})

	view := m.View()
	if !strings.Contains(view, "toggle failed") || !strings.Contains(view, "saved") {
		t.Fatalf("toasts missing from view:\n%s", view)
	}
}

func TestMutationFailureReloadsOnlyWhenPartial(t *testing.T) {
	m := testApp()

	// Plain failure: toast only, list untouched until the user retries.
	_, cmd := update(t, m, mutationDoneMsg{area: TabReminders, verb: "Reminder deleted", err: errors.New("boom")})
	if cmd == nil {
		t.Fatalf("failure produced no toast")
	}

	// Partial failure (reorder): the reload must fire to revert the
	// optimistic local order.
	_, cmd = update(t, m, mutationDoneMsg{area: TabFinance, verb: "Order saved", err: errors.New("boom"), partial: true})
	if cmd == nil {
		t.Fatalf("partial failure did not reload")
	}
}

func TestJobsLoadFeedsList(t *testing.T) {
	m := testApp()
	next := time.Now().Add(time.Hour)
	m, _ = update(t, m, jobsLoadedMsg{jobs: []models.Job{
		{ID: "weather_daily", NextRunTime: &next},
		{ID: "finance_us_daily"},
	}})
	if m.jobs.Len() != 2 {
		t.Fatalf("jobs list has %d rows", m.jobs.Len())
	}

	m.tab = TabJobs
	view := m.View()
	if !strings.Contains(view, "weather_daily") {
		t.Fatalf("job row missing:\n%s", view)
	}
	// A job without a next run renders the placeholder, not a zero time.
	if !strings.Contains(view, "finance_us_daily") || !strings.Contains(view, "-") {
		t.Fatalf("nil next-run not rendered as placeholder:\n%s", view)
	}
}

func TestOverdueReminderFlagged(t *testing.T) {
	m := testApp()
	past := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(2 * time.Hour)
	m, _ = update(t, m, remindersLoadedMsg{reminders: []models.Reminder{
		{ID: 1, MessageContent: "water plants", TargetDatetime: past},
		{ID: 2, MessageContent: "call home", TargetDatetime: future},
	}})

	m.tab = TabReminders
	view := m.View()
	if !strings.Contains(view, "(overdue)") {
		t.Fatalf("overdue flag missing:\n%s", view)
	}
	if strings.Count(view, "(overdue)") != 1 {
		t.Fatalf("future reminder flagged overdue:\n%s", view)
	}
}

func TestStaleWatchlistLoadIgnoredAfterMarketSwitch(t *testing.T) {
	m := testApp()
	m.tab = TabFinance
	m, _ = update(t, m, key("m")) // switch to KR

	// A late US response must not clobber the KR view.
	m, _ = update(t, m, watchlistLoadedMsg{market: models.MarketUS, items: []models.WatchlistItem{
		{ID: 1, Ticker: "AAPL", Market: models.MarketUS},
	}})
	if m.watchlist.Len() != 0 {
		t.Fatalf("stale market data applied")
	}

	m, _ = update(t, m, watchlistLoadedMsg{market: models.MarketKR, items: []models.WatchlistItem{
		{ID: 2, Ticker: "005930", Market: models.MarketKR},
	}})
	if m.watchlist.Len() != 1 {
		t.Fatalf("current market data dropped")
	}
}

func TestMarketSwitchClearsAlertAndQuotePanes(t *testing.T) {
	m := testApp()
	m.tab = TabFinance
	m.alertsFor = 7
	m.quote = &models.Quote{Ticker: "AAPL", Market: models.MarketUS, Price: 180}

	m, cmd := update(t, m, key("m"))
	if m.alertsFor != 0 || m.quote != nil {
		t.Fatalf("market switch kept stale panes")
	}
	if cmd == nil {
		t.Fatalf("market switch did not reload the watchlist")
	}
	if m.market != models.MarketKR {
		t.Fatalf("market = %q", m.market)
	}
}

func TestReminderEntryPrefillsTomorrowDefault(t *testing.T) {
	m := testApp()
	m.tab = TabReminders
	m, _ = update(t, m, key("a"))

	if !m.addingReminder {
		t.Fatalf("entry form not opened")
	}
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	want := tomorrow + " 09:00"
	if got := m.reminderWhen.Value(); got != want {
		t.Fatalf("prefill = %q, want %q", got, want)
	}

	// Esc closes without saving.
	m, _ = update(t, m, key("esc"))
	if m.addingReminder {
		t.Fatalf("esc did not close the form")
	}
}

func TestReminderRequiredMessageCheckedBeforeTimeFormat(t *testing.T) {
	m := testApp()
	m.tab = TabReminders
	m, _ = update(t, m, key("a"))
	m.reminderText.SetValue("   ")
	m.reminderWhen.SetValue("not a time")

	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected validation toast")
	}
	if !m.addingReminder {
		t.Fatalf("form closed despite invalid input")
	}
	view := m.View()
	if !strings.Contains(view, "Reminder message is required") {
		t.Fatalf("missing-message error not shown first:\n%s", view)
	}
	if strings.Contains(view, "YYYY-MM-DD") {
		t.Fatalf("time-format error shown ahead of the required-field check:\n%s", view)
	}
}

func TestBadNotificationTimeKeepsEntryOpen(t *testing.T) {
	m := testApp()
	m.tab = TabModules
	m, _ = update(t, m, key("t"))

	if !m.editingTime {
		t.Fatalf("time entry not opened")
	}
	m.timeInput.SetValue("25:99")

	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected format-error toast")
	}
	if !m.editingTime {
		t.Fatalf("entry closed despite invalid time")
	}

	m, _ = update(t, m, key("esc"))
	if m.editingTime {
		t.Fatalf("esc did not close the entry")
	}
}

func TestBadReminderTimeToastsWithoutSubmitting(t *testing.T) {
	m := testApp()
	m.tab = TabReminders
	m, _ = update(t, m, key("a"))
	m.reminderText.SetValue("dentist")
	m.reminderWhen.SetValue("not a time")

	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected format-error toast")
	}
	if !m.addingReminder {
		t.Fatalf("form closed despite invalid time")
	}
}
