// Package app composes the dashboard: tabbed panels over one message
// stream, a shared toast surface, and the reload-after-mutation
// contract (every create/delete/reorder reloads its listing from the
// backend instead of splicing rows locally).
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/format"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/state"
	"github.com/notidash/internal/tui/authpanel"
	"github.com/notidash/internal/tui/crudlist"
	"github.com/notidash/internal/tui/logview"
	"github.com/notidash/internal/tui/statuspanel"
	"github.com/notidash/internal/tui/toast"
	"github.com/notidash/pkg/logger"
)

// Tab identifies one dashboard surface
type Tab int

const (
	TabOverview Tab = iota
	TabModules
	TabLogs
	TabJobs
	TabReminders
	TabFinance
	TabAccounts
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Modules", "Logs", "Jobs", "Reminders", "Finance", "Accounts"}

// Config carries the app-level knobs
type Config struct {
	PageSize            int
	RecentLimit         int
	DefaultReminderTime string
}

// Messages

type overviewMsg struct {
	scheduler *models.SchedulerStatus
	pending   *int
	err       error
}

type jobsLoadedMsg struct {
	jobs []models.Job
	err  error
}

type remindersLoadedMsg struct {
	reminders []models.Reminder
	err       error
}

type watchlistLoadedMsg struct {
	market models.Market
	items  []models.WatchlistItem
	err    error
}

type alertsLoadedMsg struct {
	watchlistID int64
	alerts      []models.PriceAlert
	err         error
}

type quoteLoadedMsg struct {
	quote *models.Quote
	err   error
}

type mutationDoneMsg struct {
	area    Tab
	verb    string
	err     error
	partial bool // reorder: failure reloads instead of reverting locally
}

type linkResultMsg struct {
	result *state.LinkResult
}

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

// Model is the dashboard root
type Model struct {
	client *api.Client
	store  *state.Store
	ctx    context.Context
	cfg    Config
	log    *logger.Logger

	tab    Tab
	toasts toast.Model

	scheduler *models.SchedulerStatus
	pending   *int

	panels      []statuspanel.Model
	panelIndex  int
	editingTime bool
	timeInput   textinput.Model

	logs       logview.Model
	recentLogs logview.Model

	jobs      crudlist.Model
	reminders crudlist.Model

	market    models.Market
	watchlist crudlist.Model
	alerts    crudlist.Model
	alertsFor int64
	quote     *models.Quote

	accounts authpanel.Model

	addingReminder bool
	reminderText   textinput.Model
	reminderWhen   textinput.Model
	reminderFocus  int

	addingTicker bool
	tickerInput  textinput.Model
}

// Descriptors for the four module panels. Memo has no scheduled send,
// so no test type.
func panelDescriptors() []statuspanel.Descriptor {
	return []statuspanel.Descriptor{
		{Category: models.CategoryWeather, Title: "Weather", TestType: "weather", PreviewVariants: []string{""}},
		{Category: models.CategoryFinance, Title: "Finance", TestType: "finance", PreviewVariants: []string{"us", "kr"}},
		{Category: models.CategoryCalendar, Title: "Calendar", TestType: "calendar", PreviewVariants: []string{""}},
		{Category: models.CategoryMemo, Title: "Memo", PreviewVariants: []string{""}},
	}
}

// New builds the dashboard model
func New(ctx context.Context, client *api.Client, store *state.Store, cfg Config, log *logger.Logger) Model {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 20
	}
	if cfg.DefaultReminderTime == "" {
		cfg.DefaultReminderTime = "09:00"
	}

	var panels []statuspanel.Model
	for _, desc := range panelDescriptors() {
		panels = append(panels, statuspanel.New(ctx, client, desc))
	}

	text := textinput.New()
	text.Placeholder = "what to remind"
	text.CharLimit = 200
	text.Prompt = "> "

	when := textinput.New()
	when.Placeholder = "YYYY-MM-DD HH:MM"
	when.CharLimit = 16
	when.Prompt = "> "

	ticker := textinput.New()
	ticker.Placeholder = "ticker"
	ticker.CharLimit = 12
	ticker.Prompt = "> "

	notifyAt := textinput.New()
	notifyAt.Placeholder = "HH:MM"
	notifyAt.CharLimit = 5
	notifyAt.Prompt = "> "

	return Model{
		client:       client,
		store:        store,
		ctx:          ctx,
		cfg:          cfg,
		log:          log.WithComponent("dashboard"),
		toasts:       toast.New(),
		panels:       panels,
		logs:         logview.New(ctx, client, logview.ModeBrowser, cfg.PageSize),
		recentLogs:   logview.New(ctx, client, logview.ModeEmbedded, cfg.RecentLimit),
		jobs:         crudlist.New("Scheduled Jobs", "No jobs scheduled."),
		reminders:    crudlist.New("Reminders", "No reminders. Press a to add one."),
		market:       models.MarketUS,
		watchlist:    crudlist.New("Watchlist", "Watchlist is empty. Press a to add a ticker."),
		alerts:       crudlist.New("Price Alerts", "No alerts for this item."),
		accounts:     authpanel.New(ctx, client),
		reminderText: text,
		reminderWhen: when,
		tickerInput:  ticker,
		timeInput:    notifyAt,
	}
}

// Init loads every surface and drains pending link feedback
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadOverview(),
		m.recentLogs.Init(),
		m.logs.Init(),
		m.loadJobs(),
		m.loadReminders(),
		m.loadWatchlist(m.market),
		m.accounts.Init(),
	}
	for _, p := range m.panels {
		cmds = append(cmds, p.Init())
	}
	cmds = append(cmds, m.drainLinkResults())
	return tea.Batch(cmds...)
}

// Commands

func (m Model) loadOverview() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		scheduler, err := client.SchedulerStatus(ctx)
		if err != nil {
			return overviewMsg{err: err}
		}
		count, err := client.PendingReminderCount(ctx)
		if err != nil {
			// Partial data: keep the scheduler half.
			return overviewMsg{scheduler: scheduler}
		}
		return overviewMsg{scheduler: scheduler, pending: &count}
	}
}

func (m Model) loadJobs() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		jobs, err := client.Jobs(ctx)
		return jobsLoadedMsg{jobs: jobs, err: err}
	}
}

func (m Model) loadReminders() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		reminders, err := client.Reminders(ctx, nil)
		return remindersLoadedMsg{reminders: reminders, err: err}
	}
}

func (m Model) loadWatchlist(market models.Market) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		items, err := client.Watchlist(ctx, market)
		return watchlistLoadedMsg{market: market, items: items, err: err}
	}
}

func (m Model) loadAlerts(watchlistID int64) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		alerts, err := client.Alerts(ctx, watchlistID)
		return alertsLoadedMsg{watchlistID: watchlistID, alerts: alerts, err: err}
	}
}

func (m Model) drainLinkResults() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		for _, provider := range models.Providers() {
			result, ok, err := store.TakeLinkResult(ctx, provider)
			if err != nil || !ok {
				continue
			}
			return linkResultMsg{result: result}
		}
		return nil
	}
}

// reloadFor maps a mutated area back to its listing load
func (m Model) reloadFor(area Tab) tea.Cmd {
	switch area {
	case TabJobs:
		return tea.Batch(m.loadJobs(), m.loadOverview())
	case TabReminders:
		return tea.Batch(m.loadReminders(), m.loadOverview())
	case TabFinance:
		cmds := []tea.Cmd{m.loadWatchlist(m.market)}
		if m.alertsFor > 0 {
			cmds = append(cmds, m.loadAlerts(m.alertsFor))
		}
		return tea.Batch(cmds...)
	case TabLogs:
		return m.logs.Refresh()
	}
	return nil
}

// Update is the single message loop
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case toast.ExpireMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd

	case statuspanel.ToastMsg:
		level := toast.LevelSuccess
		if msg.Error {
			level = toast.LevelError
		}
		return m, m.toasts.Push(level, msg.Message)

	case authpanel.ConnectRequestMsg:
		// Browser flows run outside the TUI; point the user at the
		// link command instead of blocking the event loop.
		return m, m.toasts.Push(toast.LevelInfo,
			fmt.Sprintf("Run `notidash link %s` in another terminal to connect.", msg.Provider))

	case linkResultMsg:
		level := toast.LevelSuccess
		if !msg.result.Success {
			level = toast.LevelError
		}
		cmds = append(cmds, m.toasts.Push(level, msg.result.Message))
		// More results may be pending; keep draining.
		cmds = append(cmds, m.drainLinkResults(), m.accounts.Refresh())
		return m, tea.Batch(cmds...)

	case overviewMsg:
		if msg.err == nil {
			m.scheduler = msg.scheduler
			if msg.pending != nil {
				m.pending = msg.pending
			}
		}
		return m, nil

	case jobsLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(toast.LevelError, msg.err.Error())
		}
		m.jobs.SetItems(jobItems(msg.jobs))
		return m, nil

	case remindersLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(toast.LevelError, msg.err.Error())
		}
		m.reminders.SetItems(reminderItems(msg.reminders, time.Now()))
		return m, nil

	case watchlistLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(toast.LevelError, msg.err.Error())
		}
		if msg.market != m.market {
			return m, nil
		}
		m.watchlist.SetItems(watchItems(msg.items))
		return m, nil

	case alertsLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(toast.LevelError, msg.err.Error())
		}
		if msg.watchlistID != m.alertsFor {
			return m, nil
		}
		m.alerts.SetItems(alertItems(msg.alerts, m.market))
		return m, nil

	case quoteLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(toast.LevelError, msg.err.Error())
		}
		m.quote = msg.quote
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			cmds = append(cmds, m.toasts.Push(toast.LevelError, msg.err.Error()))
			if msg.partial {
				// Local state may be ahead of the backend; reload to revert.
				cmds = append(cmds, m.reloadFor(msg.area))
			}
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.toasts.Push(toast.LevelSuccess, msg.verb+" done"))
		cmds = append(cmds, m.reloadFor(msg.area))
		return m, tea.Batch(cmds...)
	}

	// Fan the message out to the child surfaces.
	var cmd tea.Cmd
	m.logs, cmd = m.logs.Update(msg)
	cmds = append(cmds, cmd)
	m.recentLogs, cmd = m.recentLogs.Update(msg)
	cmds = append(cmds, cmd)
	m.accounts, cmd = m.accounts.Update(msg)
	cmds = append(cmds, cmd)
	for i := range m.panels {
		m.panels[i], cmd = m.panels[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the active tab under the tab bar, toasts on top
func (m Model) View() string {
	var b strings.Builder

	if t := m.toasts.View(); t != "" {
		b.WriteString(t + "\n")
	}
	b.WriteString(m.tabBar() + "\n\n")

	switch m.tab {
	case TabOverview:
		b.WriteString(m.overviewView())
	case TabModules:
		b.WriteString(m.panels[m.panelIndex].View())
		if m.editingTime {
			b.WriteString("\n" + dimStyle.Render("Notify at") + "\n")
			b.WriteString(m.timeInput.View() + "\n")
			b.WriteString(dimStyle.Render("enter save · esc cancel"))
		} else {
			b.WriteString("\n" + dimStyle.Render("[ / ] switch module · e enable/disable · t time · p preview · T test send"))
		}
	case TabLogs:
		b.WriteString(m.logs.View())
		b.WriteString("\n" + dimStyle.Render("←/→ page · c category · s status"))
	case TabJobs:
		b.WriteString(m.jobs.View())
		b.WriteString("\n" + dimStyle.Render("j/k move · d delete · P pause · R resume"))
	case TabReminders:
		b.WriteString(m.remindersView())
	case TabFinance:
		b.WriteString(m.financeView())
	case TabAccounts:
		b.WriteString(m.accounts.View())
	}
	return b.String()
}

func (m Model) tabBar() string {
	var parts []string
	for i := Tab(0); i < tabCount; i++ {
		label := tabNames[i]
		if i == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}

func (m Model) overviewView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Scheduler") + "\n")
	if m.scheduler == nil {
		b.WriteString(dimStyle.Render("Loading...") + "\n")
	} else {
		running := "stopped"
		if m.scheduler.IsRunning {
			running = "running"
		}
		b.WriteString(fmt.Sprintf("  %s, %d jobs\n", running, m.scheduler.JobCount))
	}
	if m.pending != nil {
		b.WriteString(fmt.Sprintf("  %d pending reminders\n", *m.pending))
	}
	b.WriteString("\n" + headerStyle.Render("Recent activity") + "\n")
	b.WriteString(m.recentLogs.View())
	return b.String()
}

func (m Model) remindersView() string {
	var b strings.Builder
	b.WriteString(m.reminders.View())
	if m.addingReminder {
		b.WriteString("\n" + dimStyle.Render("New reminder") + "\n")
		b.WriteString(m.reminderText.View() + "\n")
		b.WriteString(m.reminderWhen.View() + "\n")
		b.WriteString(dimStyle.Render("enter save · esc cancel · tab switch field"))
	} else {
		b.WriteString("\n" + dimStyle.Render("a add · d delete"))
	}
	return b.String()
}

func (m Model) financeView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Market: %s", m.market)) + "\n\n")
	b.WriteString(m.watchlist.View())
	if m.addingTicker {
		b.WriteString("\n" + dimStyle.Render("Add ticker") + "\n")
		b.WriteString(m.tickerInput.View() + "\n")
		b.WriteString(dimStyle.Render("enter add · esc cancel"))
	}
	if m.alertsFor > 0 {
		b.WriteString("\n\n" + m.alerts.View())
	}
	if m.quote != nil {
		b.WriteString("\n\n" + m.quoteView())
	}
	if !m.addingTicker {
		b.WriteString("\n" + dimStyle.Render("m market · a add · d delete · J/K reorder · enter alerts · q quote"))
	}
	return b.String()
}

func (m Model) quoteView() string {
	q := m.quote
	var b strings.Builder
	b.WriteString(headerStyle.Render(q.Ticker))
	if q.Name != "" {
		b.WriteString(dimStyle.Render("  " + q.Name))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", format.Money(q.Market, q.Price), format.ChangeBadge(q.ChangePercent)))
	for _, period := range q.Periods {
		b.WriteString(fmt.Sprintf("  %-4s %s\n", period.Label, format.Percent(period.Percent)))
	}
	if q.Week52Low != nil && q.Week52High != nil {
		b.WriteString(fmt.Sprintf("  52w  %s %s %s\n",
			format.Money(q.Market, *q.Week52Low),
			format.RangeGauge(*q.Week52Low, *q.Week52High, q.Price, 20),
			format.Money(q.Market, *q.Week52High)))
	}
	return b.String()
}
