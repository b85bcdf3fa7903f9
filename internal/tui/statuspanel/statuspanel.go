// Package statuspanel is the per-module panel: the module's setting
// (enabled flag plus notification time), its run schedule, its latest
// runs, and the preview / test-send actions.
//
// The enable toggle is optimistic: the flag flips on screen first, the
// write goes out, and a failed write reverts the flag with an error
// toast. A short reconcile refresh follows every toggle so the panel
// converges on whatever the backend actually stored.
//
// Test and preview results land in an inline result slot inside the
// panel (auto-cleared after a few seconds) rather than the global toast
// stack; a spinner marks the in-flight phase.
package statuspanel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/format"
	"github.com/notidash/internal/models"
)

const (
	// reconcileDelay is how long after a toggle write the panel waits
	// before re-reading the setting.
	reconcileDelay = time.Second
	// testLogDelay gives the backend time to write the test run's log
	// before the panel refreshes.
	testLogDelay = 2 * time.Second
	// resultClearDelay is how long an inline result stays on screen.
	resultClearDelay = 3 * time.Second

	recentLogCount = 5
)

// Descriptor declares one module's panel surface. Empty TestType hides
// the test action; empty PreviewVariants hides preview.
type Descriptor struct {
	Category        models.Category
	Title           string
	TestType        string
	PreviewVariants []string
}

// Messages

type settingLoadedMsg struct {
	category models.Category
	setting  *models.Setting
	err      error
}

type statusLoadedMsg struct {
	category models.Category
	status   *models.StatusSummary
	err      error
}

type logsLoadedMsg struct {
	category models.Category
	logs     []models.LogEntry
	err      error
}

type toggleSavedMsg struct {
	category models.Category
	previous bool
	err      error
}

type timeSavedMsg struct {
	category models.Category
	err      error
}

type reconcileMsg struct {
	category models.Category
}

type testSentMsg struct {
	category models.Category
	result   *models.ActionResult
	err      error
}

type testSettledMsg struct {
	category models.Category
}

type previewLoadedMsg struct {
	category models.Category
	text     string
	err      error
}

type resultClearedMsg struct {
	category models.Category
	seq      int
}

// ToastMsg asks the surrounding app to show a toast
type ToastMsg struct {
	Error   bool
	Message string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	resultErrSty = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("245")).
			PaddingLeft(1)
)

// Model is one module's panel state
type Model struct {
	desc   Descriptor
	client *api.Client
	ctx    context.Context

	setting *models.Setting
	status  *models.StatusSummary
	logs    []models.LogEntry
	preview string
	loadErr string

	saving     bool
	testing    bool
	previewing bool
	spin       spinner.Model

	result    string
	resultErr bool
	resultSeq int
}

// New creates a panel for one module
func New(ctx context.Context, client *api.Client, desc Descriptor) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	return Model{
		desc:   desc,
		client: client,
		ctx:    ctx,
		spin:   spin,
	}
}

// Category identifies which module this panel shows
func (m Model) Category() models.Category {
	return m.desc.Category
}

// NotificationTime returns the current "HH:MM" time, empty before load
func (m Model) NotificationTime() string {
	if m.setting == nil {
		return ""
	}
	return m.setting.NotificationTime
}

// Init loads the setting, the run status, and the recent runs
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSetting(), m.loadStatus(), m.loadLogs())
}

func (m Model) loadSetting() tea.Cmd {
	return func() tea.Msg {
		setting, err := m.client.GetSetting(m.ctx, m.desc.Category)
		return settingLoadedMsg{category: m.desc.Category, setting: setting, err: err}
	}
}

func (m Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.client.ModuleStatus(m.ctx, m.desc.Category)
		return statusLoadedMsg{category: m.desc.Category, status: status, err: err}
	}
}

func (m Model) loadLogs() tea.Cmd {
	return func() tea.Msg {
		logs, err := m.client.ModuleLogs(m.ctx, m.desc.Category, recentLogCount)
		return logsLoadedMsg{category: m.desc.Category, logs: logs, err: err}
	}
}

// Toggle flips the enabled flag on screen and writes it out. The
// returned command carries the previous value so a failure can revert.
func (m *Model) Toggle() tea.Cmd {
	if m.setting == nil || m.saving {
		return nil
	}
	previous := m.setting.IsActive
	m.setting.IsActive = !previous
	m.saving = true

	next := m.setting.IsActive
	category := m.desc.Category
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		err := client.UpdateSetting(ctx, category, models.SettingUpdate{IsActive: &next})
		return toggleSavedMsg{category: category, previous: previous, err: err}
	}
}

// SetNotificationTime writes a new "HH:MM" notification time
func (m *Model) SetNotificationTime(value string) tea.Cmd {
	if m.saving {
		return nil
	}
	m.saving = true
	category := m.desc.Category
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		err := client.UpdateSetting(ctx, category, models.SettingUpdate{NotificationTime: &value})
		return timeSavedMsg{category: category, err: err}
	}
}

// SendTest fires the module's test notification
func (m *Model) SendTest() tea.Cmd {
	if m.desc.TestType == "" || m.testing {
		return nil
	}
	m.testing = true
	category := m.desc.Category
	testType := m.desc.TestType
	client := m.client
	ctx := m.ctx
	send := func() tea.Msg {
		result, err := client.TestNotification(ctx, testType)
		return testSentMsg{category: category, result: result, err: err}
	}
	return tea.Batch(send, m.spin.Tick)
}

// LoadPreview fetches one preview variant ("" for the default)
func (m *Model) LoadPreview(variant string) tea.Cmd {
	if len(m.desc.PreviewVariants) == 0 || m.previewing {
		return nil
	}
	m.previewing = true
	category := m.desc.Category
	client := m.client
	ctx := m.ctx
	load := func() tea.Msg {
		result, err := client.Preview(ctx, category, variant)
		var text string
		if result != nil {
			text = result.Message
		}
		return previewLoadedMsg{category: category, text: text, err: err}
	}
	return tea.Batch(load, m.spin.Tick)
}

// showResult fills the inline result slot and schedules its clear. The
// sequence number keeps an old clear tick from wiping a newer result.
func (m *Model) showResult(text string, isErr bool) tea.Cmd {
	m.resultSeq++
	m.result = text
	m.resultErr = isErr
	seq := m.resultSeq
	category := m.desc.Category
	return tea.Tick(resultClearDelay, func(time.Time) tea.Msg {
		return resultClearedMsg{category: category, seq: seq}
	})
}

// Update handles this panel's messages. Messages for other categories
// pass through untouched so panels can share one message stream.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingLoadedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.setting = msg.setting
		return m, nil

	case statusLoadedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		// Status is supplemental; a failed load keeps the last snapshot.
		if msg.err == nil {
			m.status = msg.status
		}
		return m, nil

	case logsLoadedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		if msg.err == nil {
			m.logs = msg.logs
		}
		return m, nil

	case toggleSavedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			if m.setting != nil {
				m.setting.IsActive = msg.previous
			}
			return m, toastCmd(true, msg.err.Error())
		}
		return m, m.scheduleReconcile()

	case timeSavedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			return m, toastCmd(true, msg.err.Error())
		}
		return m, tea.Batch(toastCmd(false, "Notification time saved"), m.scheduleReconcile())

	case reconcileMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		return m, tea.Batch(m.loadSetting(), m.loadStatus())

	case testSentMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		m.testing = false
		if msg.err != nil {
			if api.IsAccountNotLinked(msg.err) {
				return m, m.showResult("Account not linked. Connect it in the accounts panel first.", true)
			}
			return m, m.showResult(msg.err.Error(), true)
		}
		message := "Test notification sent"
		if msg.result != nil && msg.result.Message != "" {
			message = msg.result.Message
		}
		category := m.desc.Category
		settle := tea.Tick(testLogDelay, func(time.Time) tea.Msg {
			return testSettledMsg{category: category}
		})
		return m, tea.Batch(m.showResult(message, false), settle)

	case testSettledMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		return m, tea.Batch(m.loadSetting(), m.loadStatus(), m.loadLogs())

	case previewLoadedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		m.previewing = false
		if msg.err != nil {
			return m, m.showResult(msg.err.Error(), true)
		}
		m.preview = msg.text
		return m, nil

	case resultClearedMsg:
		if msg.category != m.desc.Category {
			return m, nil
		}
		if msg.seq == m.resultSeq {
			m.result = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.testing && !m.previewing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) scheduleReconcile() tea.Cmd {
	category := m.desc.Category
	return tea.Tick(reconcileDelay, func(time.Time) tea.Msg {
		return reconcileMsg{category: category}
	})
}

func toastCmd(isErr bool, message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Error: isErr, Message: message}
	}
}

// View renders the panel
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.desc.Title))
	b.WriteString("\n")

	if m.loadErr != "" {
		b.WriteString(labelStyle.Render("Failed to load: " + m.loadErr))
		return b.String()
	}
	if m.setting == nil {
		b.WriteString(labelStyle.Render("Loading..."))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Enabled:"), format.ActiveBadge(m.setting.IsActive)))
	if m.saving {
		b.WriteString(labelStyle.Render("  saving..."))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Notify at:"), m.setting.NotificationTime))

	if m.status != nil {
		next := format.DateTime(m.status.NextRunTime)
		if m.status.USNextRunTime != nil || m.status.KRNextRunTime != nil {
			next = fmt.Sprintf("US %s / KR %s",
				format.DateTime(m.status.USNextRunTime), format.DateTime(m.status.KRNextRunTime))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Next run:"), next))
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			labelStyle.Render("Last run:"),
			format.DateTime(m.status.LastRunTime),
			format.StatusBadge(m.status.LastStatus)))
		if m.status.GoogleConnected != nil {
			b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Google:"), format.ConnectedBadge(*m.status.GoogleConnected)))
		}
	}

	if m.testing {
		b.WriteString(fmt.Sprintf("%s sending test...\n", m.spin.View()))
	}
	if m.previewing {
		b.WriteString(fmt.Sprintf("%s loading preview...\n", m.spin.View()))
	}
	if m.result != "" {
		style := resultStyle
		if m.resultErr {
			style = resultErrSty
		}
		b.WriteString(style.Render(m.result) + "\n")
	}

	if len(m.logs) > 0 {
		b.WriteString("\n" + labelStyle.Render("Recent runs") + "\n")
		today := time.Now().Format("2006-01-02")
		for _, entry := range m.logs {
			// Same-day runs show just the clock, older ones the full stamp.
			stamp := format.DateTime(&entry.CreatedAt)
			if entry.CreatedAt.Local().Format("2006-01-02") == today {
				stamp = format.TimeOnly(&entry.CreatedAt)
			}
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				stamp,
				format.StatusBadge(entry.Status),
				format.Truncate(entry.Message, 50)))
		}
	}

	if m.preview != "" {
		b.WriteString("\n" + labelStyle.Render("Preview") + "\n")
		b.WriteString(previewStyle.Render(m.preview))
		b.WriteString("\n")
	}
	return b.String()
}
