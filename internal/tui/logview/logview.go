// Package logview renders notification logs in two shapes: the
// embedded recent feed the dashboard shows inline, and the full
// paginated browser with category/status filters and a page strip.
package logview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/format"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/pager"
)

// Mode selects the surface shape
type Mode int

const (
	// ModeEmbedded is the fixed-size recent feed, no pagination strip
	ModeEmbedded Mode = iota
	// ModeBrowser is the full filterable, paginated listing
	ModeBrowser
)

// Load messages carry the surface mode so the embedded feed and the
// browser can share one message stream without clobbering each other.
type pageLoadedMsg struct {
	mode Mode
	page *models.LogPage
	err  error
}

type statsLoadedMsg struct {
	mode  Mode
	stats *models.LogStats
	err   error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	currentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	pageNumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	emptyLogsText = "No logs yet. Runs will show up here once a module fires."
)

// Model is one log surface
type Model struct {
	mode   Mode
	client *api.Client
	ctx    context.Context

	pager   pager.Pager
	filter  models.LogFilter
	entries []models.LogEntry
	count   int
	stats   *models.LogStats

	loaded  bool
	loadErr string
}

// New creates a log surface. Embedded surfaces use limit as their feed
// size; browsers use it as the page size.
func New(ctx context.Context, client *api.Client, mode Mode, limit int) Model {
	return Model{
		mode:   mode,
		client: client,
		ctx:    ctx,
		pager:  pager.New(limit),
	}
}

// Init loads the first page (and, for the browser, the stats header)
func (m Model) Init() tea.Cmd {
	if m.mode == ModeBrowser {
		return tea.Batch(m.loadPage(), m.loadStats())
	}
	return m.loadPage()
}

func (m Model) loadPage() tea.Cmd {
	mode := m.mode
	client := m.client
	ctx := m.ctx

	// The embedded feed takes the newest entries unfiltered; only the
	// browser pages through the full listing.
	if mode == ModeEmbedded {
		limit := m.pager.PageSize
		return func() tea.Msg {
			entries, err := client.RecentLogs(ctx, limit)
			if err != nil {
				return pageLoadedMsg{mode: mode, err: err}
			}
			page := &models.LogPage{Logs: entries, Total: len(entries), Count: len(entries)}
			return pageLoadedMsg{mode: mode, page: page}
		}
	}

	filter := m.filter
	filter.Limit = m.pager.PageSize
	filter.Offset = m.pager.Offset()
	return func() tea.Msg {
		page, err := client.Logs(ctx, filter)
		return pageLoadedMsg{mode: mode, page: page, err: err}
	}
}

func (m Model) loadStats() tea.Cmd {
	mode := m.mode
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		stats, err := client.LogStats(ctx)
		return statsLoadedMsg{mode: mode, stats: stats, err: err}
	}
}

// Refresh re-reads the current page. Mutations elsewhere call this
// instead of patching entries locally.
func (m Model) Refresh() tea.Cmd {
	return m.loadPage()
}

// NextPage advances one page. On the last page it returns nil: no
// request goes out.
func (m *Model) NextPage() tea.Cmd {
	if m.mode != ModeBrowser || !m.pager.HasNext() {
		return nil
	}
	m.pager.SetPage(m.pager.Current + 1)
	return m.loadPage()
}

// PrevPage goes back one page, nil on page 1
func (m *Model) PrevPage() tea.Cmd {
	if m.mode != ModeBrowser || !m.pager.HasPrev() {
		return nil
	}
	m.pager.SetPage(m.pager.Current - 1)
	return m.loadPage()
}

// GoToPage jumps to page n (clamped), reloading only when it moves
func (m *Model) GoToPage(n int) tea.Cmd {
	if m.mode != ModeBrowser {
		return nil
	}
	before := m.pager.Current
	m.pager.SetPage(n)
	if m.pager.Current == before {
		return nil
	}
	return m.loadPage()
}

// CycleCategory rotates the category filter through all/weather/...
// and resets to page 1.
func (m *Model) CycleCategory() tea.Cmd {
	m.filter.Category = nextCategory(m.filter.Category)
	m.pager.Reset()
	return m.loadPage()
}

// CycleStatus rotates the status filter and resets to page 1
func (m *Model) CycleStatus() tea.Cmd {
	m.filter.Status = nextStatus(m.filter.Status)
	m.pager.Reset()
	return m.loadPage()
}

// SetFilter applies a saved filter wholesale, resetting to page 1
func (m *Model) SetFilter(filter models.LogFilter) tea.Cmd {
	m.filter.Category = filter.Category
	m.filter.Status = filter.Status
	m.pager.Reset()
	return m.loadPage()
}

// Filter exposes the active filter so callers can persist it
func (m Model) Filter() models.LogFilter {
	return m.filter
}

func nextCategory(current models.Category) models.Category {
	categories := models.Categories()
	if current == "" {
		return categories[0]
	}
	for i, c := range categories {
		if c == current {
			if i == len(categories)-1 {
				return ""
			}
			return categories[i+1]
		}
	}
	return ""
}

func nextStatus(current models.RunStatus) models.RunStatus {
	switch current {
	case "":
		return models.RunStatusSuccess
	case models.RunStatusSuccess:
		return models.RunStatusFail
	case models.RunStatusFail:
		return models.RunStatusSkip
	default:
		return ""
	}
}

// Update handles page and stats loads
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.mode != m.mode {
			return m, nil
		}
		m.loaded = true
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.entries = msg.page.Logs
		m.count = msg.page.Count
		m.pager.Total = msg.page.Total
		// The server total can shrink under us; keep the page valid.
		m.pager.SetPage(m.pager.Current)
		return m, nil

	case statsLoadedMsg:
		if msg.mode != m.mode {
			return m, nil
		}
		if msg.err == nil {
			m.stats = msg.stats
		}
		return m, nil
	}
	return m, nil
}

// Empty reports whether the surface has loaded and found nothing
func (m Model) Empty() bool {
	return m.loaded && m.pager.Total == 0 && len(m.entries) == 0
}

// View renders the surface
func (m Model) View() string {
	var b strings.Builder

	if m.mode == ModeBrowser {
		b.WriteString(titleStyle.Render("Logs"))
		if m.stats != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %d total", m.stats.TotalLogs)))
		}
		b.WriteString("\n")
		b.WriteString(m.filterLine())
		b.WriteString("\n")
	}

	if m.loadErr != "" {
		b.WriteString(dimStyle.Render("Failed to load logs: " + m.loadErr))
		return b.String()
	}
	if !m.loaded {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}
	if m.Empty() {
		b.WriteString(dimStyle.Render(emptyLogsText))
		return b.String()
	}

	for _, entry := range m.entries {
		b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			format.DateTime(&entry.CreatedAt),
			format.CategoryBadge(entry.Category),
			format.StatusBadge(entry.Status),
			format.Truncate(entry.Message, 50)))
	}

	if m.mode == ModeBrowser {
		b.WriteString(dimStyle.Render(m.pager.Summary(m.count)))
		if strip := m.pageStrip(); strip != "" {
			b.WriteString("\n" + strip)
		}
	}
	return b.String()
}

func (m Model) filterLine() string {
	category := "all"
	if m.filter.Category != "" {
		category = string(m.filter.Category)
	}
	status := "all"
	if m.filter.Status != "" {
		status = string(m.filter.Status)
	}
	return dimStyle.Render(fmt.Sprintf("category: %s  status: %s  (c/s to change)", category, status))
}

// pageStrip renders the windowed page numbers with edge shortcuts.
// A single page renders nothing.
func (m Model) pageStrip() string {
	w := m.pager.Window()
	if len(w.Pages) == 0 {
		return ""
	}

	var parts []string
	if w.ShowFirst {
		parts = append(parts, pageNumStyle.Render("1"))
		if w.LeadingEllipsis {
			parts = append(parts, dimStyle.Render("…"))
		}
	}
	for _, page := range w.Pages {
		label := fmt.Sprintf("%d", page)
		if page == m.pager.Current {
			parts = append(parts, currentStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, pageNumStyle.Render(label))
		}
	}
	if w.ShowLast {
		if w.TrailingEllipsis {
			parts = append(parts, dimStyle.Render("…"))
		}
		parts = append(parts, pageNumStyle.Render(fmt.Sprintf("%d", m.pager.TotalPages())))
	}
	return strings.Join(parts, " ")
}
