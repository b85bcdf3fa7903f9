package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notidash/internal/models"
	"github.com/notidash/internal/schedule"
	"github.com/notidash/internal/tui/toast"
)

// handleKey routes keys by tab. Text-entry states capture everything
// except esc.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.addingReminder {
		return m.handleReminderEntry(msg)
	}
	if m.addingTicker {
		return m.handleTickerEntry(msg)
	}
	if m.editingTime {
		return m.handleTimeEntry(msg)
	}
	if m.tab == TabAccounts && m.accounts.EnteringChatID() {
		return m.handleChatIDEntry(msg)
	}

	switch msg.String() {
	case "ctrl+c", "Q":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.tab = (m.tab - 1 + tabCount) % tabCount
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7":
		n, _ := strconv.Atoi(msg.String())
		m.tab = Tab(n - 1)
		return m, nil
	}

	switch m.tab {
	case TabModules:
		return m.handleModulesKey(msg)
	case TabLogs:
		return m.handleLogsKey(msg)
	case TabJobs:
		return m.handleJobsKey(msg)
	case TabReminders:
		return m.handleRemindersKey(msg)
	case TabFinance:
		return m.handleFinanceKey(msg)
	case TabAccounts:
		return m.handleAccountsKey(msg)
	}
	return m, nil
}

func (m Model) handleModulesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panel := &m.panels[m.panelIndex]
	switch msg.String() {
	case "[":
		if m.panelIndex > 0 {
			m.panelIndex--
		}
		return m, nil
	case "]":
		if m.panelIndex < len(m.panels)-1 {
			m.panelIndex++
		}
		return m, nil
	case "e":
		return m, panel.Toggle()
	case "t":
		m.editingTime = true
		m.timeInput.SetValue(panel.NotificationTime())
		return m, m.timeInput.Focus()
	case "T":
		return m, panel.SendTest()
	case "p":
		variants := panelDescriptors()[m.panelIndex].PreviewVariants
		if len(variants) == 0 {
			return m, nil
		}
		return m, panel.LoadPreview(variants[0])
	case "P":
		// Second preview variant where the module has one (finance KR).
		variants := panelDescriptors()[m.panelIndex].PreviewVariants
		if len(variants) < 2 {
			return m, nil
		}
		return m, panel.LoadPreview(variants[1])
	}
	return m, nil
}

func (m Model) handleTimeEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingTime = false
		m.timeInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.timeInput.Value())
		if err := schedule.ValidateNotificationTime(value); err != nil {
			// Keep the entry open so the value can be fixed in place.
			return m, m.toasts.Push(toast.LevelError, err.Error())
		}
		m.editingTime = false
		m.timeInput.Blur()
		return m, m.panels[m.panelIndex].SetNotificationTime(value)
	}
	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "right", "l":
		return m, m.logs.NextPage()
	case "left", "h":
		return m, m.logs.PrevPage()
	case "c":
		cmd := m.logs.CycleCategory()
		return m, tea.Batch(cmd, m.persistLogFilter())
	case "s":
		cmd := m.logs.CycleStatus()
		return m, tea.Batch(cmd, m.persistLogFilter())
	}
	return m, nil
}

func (m Model) persistLogFilter() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	ctx := m.ctx
	filter := m.logs.Filter()
	return func() tea.Msg {
		if err := store.SaveLogFilter(ctx, "logs", filter); err != nil {
			m.log.Warn().Err(err).Msg("Failed to persist log filter")
		}
		return nil
	}
}

func (m Model) handleJobsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.jobs.CursorDown()
	case "k", "up":
		m.jobs.CursorUp()
	case "d":
		m.jobs.RequestDelete()
	case "y":
		if item, ok := m.jobs.ConfirmDelete(); ok {
			return m, m.deleteJob(item.ItemID())
		}
	case "n", "esc":
		m.jobs.CancelDelete()
	case "P":
		if item, ok := m.jobs.Selected(); ok {
			return m, m.pauseJob(item.ItemID())
		}
	case "R":
		if item, ok := m.jobs.Selected(); ok {
			return m, m.resumeJob(item.ItemID())
		}
	}
	return m, nil
}

func (m Model) handleRemindersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.reminders.CursorDown()
	case "k", "up":
		m.reminders.CursorUp()
	case "a":
		return m.openReminderEntry()
	case "d":
		m.reminders.RequestDelete()
	case "y":
		if item, ok := m.reminders.ConfirmDelete(); ok {
			return m, m.deleteReminder(item.ItemID())
		}
	case "n", "esc":
		m.reminders.CancelDelete()
	}
	return m, nil
}

// openReminderEntry prefills the datetime with tomorrow at the
// configured default time.
func (m Model) openReminderEntry() (tea.Model, tea.Cmd) {
	m.addingReminder = true
	m.reminderFocus = 0
	m.reminderText.SetValue("")
	tomorrow := time.Now().AddDate(0, 0, 1)
	m.reminderWhen.SetValue(fmt.Sprintf("%s %s", tomorrow.Format("2006-01-02"), m.cfg.DefaultReminderTime))
	m.reminderWhen.Blur()
	return m, m.reminderText.Focus()
}

func (m Model) handleReminderEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingReminder = false
		m.reminderText.Blur()
		m.reminderWhen.Blur()
		return m, nil
	case "tab":
		m.reminderFocus = 1 - m.reminderFocus
		if m.reminderFocus == 0 {
			m.reminderWhen.Blur()
			return m, m.reminderText.Focus()
		}
		m.reminderText.Blur()
		return m, m.reminderWhen.Focus()
	case "enter":
		return m.submitReminder()
	}

	var cmd tea.Cmd
	if m.reminderFocus == 0 {
		m.reminderText, cmd = m.reminderText.Update(msg)
	} else {
		m.reminderWhen, cmd = m.reminderWhen.Update(msg)
	}
	return m, cmd
}

func (m Model) submitReminder() (tea.Model, tea.Cmd) {
	// Required fields first, format second - same order as the client.
	content := strings.TrimSpace(m.reminderText.Value())
	if content == "" {
		return m, m.toasts.Push(toast.LevelError, "Reminder message is required")
	}
	when, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(m.reminderWhen.Value()), time.Local)
	if err != nil {
		return m, m.toasts.Push(toast.LevelError, "Enter the time as YYYY-MM-DD HH:MM")
	}
	create := models.ReminderCreate{
		MessageContent: content,
		TargetDatetime: when,
	}
	m.addingReminder = false
	m.reminderText.Blur()
	m.reminderWhen.Blur()

	client := m.client
	ctx := m.ctx
	return m, func() tea.Msg {
		_, err := client.CreateReminder(ctx, create)
		return mutationDoneMsg{area: TabReminders, verb: "Reminder saved", err: err}
	}
}

func (m Model) handleFinanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.watchlist.CursorDown()
	case "k", "up":
		m.watchlist.CursorUp()
	case "m":
		if m.market == models.MarketUS {
			m.market = models.MarketKR
		} else {
			m.market = models.MarketUS
		}
		m.alertsFor = 0
		m.quote = nil
		return m, m.loadWatchlist(m.market)
	case "a":
		m.addingTicker = true
		m.tickerInput.SetValue("")
		return m, m.tickerInput.Focus()
	case "d":
		m.watchlist.RequestDelete()
	case "y":
		if item, ok := m.watchlist.ConfirmDelete(); ok {
			return m, m.deleteWatchlistItem(item.ItemID())
		}
	case "n", "esc":
		m.watchlist.CancelDelete()
	case "J":
		if ids, ok := m.watchlist.MoveDown(); ok {
			return m, m.saveWatchlistOrder(ids)
		}
	case "K":
		if ids, ok := m.watchlist.MoveUp(); ok {
			return m, m.saveWatchlistOrder(ids)
		}
	case "enter":
		if item, ok := m.watchlist.Selected(); ok {
			id, _ := strconv.ParseInt(item.ItemID(), 10, 64)
			m.alertsFor = id
			return m, m.loadAlerts(id)
		}
	case "q":
		if item, ok := m.watchlist.Selected(); ok {
			return m, m.loadQuote(item.(watchItem).item.Ticker)
		}
	}
	return m, nil
}

func (m Model) handleTickerEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingTicker = false
		m.tickerInput.Blur()
		return m, nil
	case "enter":
		ticker := m.tickerInput.Value()
		m.addingTicker = false
		m.tickerInput.Blur()
		client := m.client
		ctx := m.ctx
		market := m.market
		return m, func() tea.Msg {
			_, err := client.AddWatchlistItem(ctx, ticker, market)
			return mutationDoneMsg{area: TabFinance, verb: "Ticker added", err: err}
		}
	}
	var cmd tea.Cmd
	m.tickerInput, cmd = m.tickerInput.Update(msg)
	return m, cmd
}

func (m Model) handleAccountsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.accounts.CursorDown()
	case "k", "up":
		m.accounts.CursorUp()
	case "c":
		return m, m.accounts.Connect()
	case "d":
		return m, m.accounts.Disconnect()
	case "t":
		return m, m.accounts.Test()
	case "r":
		return m, m.accounts.RefreshKakao()
	case "enter":
		return m, m.accounts.BeginChatIDEntry()
	case "esc":
		m.accounts.CancelTelegramFlow()
	}
	return m, nil
}

func (m Model) handleChatIDEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.accounts.CancelTelegramFlow()
		return m, nil
	case "enter":
		return m, m.accounts.SubmitChatID()
	}
	var cmd tea.Cmd
	m.accounts, cmd = m.accounts.Update(msg)
	return m, cmd
}

// Mutation commands. Every one resolves to mutationDoneMsg so the
// reload-after-mutation contract lives in one place.

func (m Model) deleteJob(jobID string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		err := client.DeleteJob(ctx, jobID)
		return mutationDoneMsg{area: TabJobs, verb: "Job deleted", err: err}
	}
}

func (m Model) pauseJob(jobID string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		_, err := client.PauseJob(ctx, jobID)
		return mutationDoneMsg{area: TabJobs, verb: "Job paused", err: err}
	}
}

func (m Model) resumeJob(jobID string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		_, err := client.ResumeJob(ctx, jobID)
		return mutationDoneMsg{area: TabJobs, verb: "Job resumed", err: err}
	}
}

func (m Model) deleteReminder(id string) tea.Cmd {
	reminderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		err := client.DeleteReminder(ctx, reminderID)
		return mutationDoneMsg{area: TabReminders, verb: "Reminder deleted", err: err}
	}
}

func (m Model) deleteWatchlistItem(id string) tea.Cmd {
	itemID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		err := client.DeleteWatchlistItem(ctx, itemID)
		return mutationDoneMsg{area: TabFinance, verb: "Ticker removed", err: err}
	}
}

// saveWatchlistOrder persists the whole visible order. On failure the
// reload reverts the optimistic local swap.
func (m Model) saveWatchlistOrder(ids []string) tea.Cmd {
	ordered := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil
		}
		ordered = append(ordered, n)
	}
	client := m.client
	ctx := m.ctx
	market := m.market
	return func() tea.Msg {
		err := client.ReorderWatchlist(ctx, market, ordered)
		return mutationDoneMsg{area: TabFinance, verb: "Order saved", err: err, partial: true}
	}
}

func (m Model) loadQuote(ticker string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	market := m.market
	return func() tea.Msg {
		quote, err := client.Quote(ctx, ticker, market)
		return quoteLoadedMsg{quote: quote, err: err}
	}
}
