// Package authpanel renders the account-linking surface for the three
// notification providers. Each provider's controls key off its own
// connected flag only; one provider failing to load never blanks the
// others.
//
// Kakao and Google connect through the browser (the link command);
// Telegram uses the guided flow: show the bot deep link, let the user
// message the bot, then verify the chat id they got back.
package authpanel

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notidash/internal/api"
	"github.com/notidash/internal/format"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/tui/statuspanel"
)

type statusLoadedMsg struct {
	status *models.AuthConnectionStatus
	err    error
}

type actionDoneMsg struct {
	provider models.Provider
	action   string
	result   *models.ActionResult
	err      error
}

type botInfoMsg struct {
	info *models.TelegramBotInfo
	err  error
}

type verifiedMsg struct {
	result *models.ActionResult
	err    error
}

type telegramStage int

const (
	telegramIdle telegramStage = iota
	telegramShowingBot
	telegramEnteringChatID
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	providerStyle = lipgloss.NewStyle().Bold(true)
	linkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
)

// Model is the account panel state
type Model struct {
	client *api.Client
	ctx    context.Context

	status  *models.AuthConnectionStatus
	loadErr string
	cursor  int
	busy    map[models.Provider]bool

	stage     telegramStage
	botInfo   *models.TelegramBotInfo
	chatInput textinput.Model
}

// New creates the account panel
func New(ctx context.Context, client *api.Client) Model {
	input := textinput.New()
	input.Placeholder = "chat id"
	input.CharLimit = 32
	input.Prompt = "> "
	return Model{
		client:    client,
		ctx:       ctx,
		busy:      make(map[models.Provider]bool),
		chatInput: input,
	}
}

// Init loads the link snapshot
func (m Model) Init() tea.Cmd {
	return m.loadStatus()
}

func (m Model) loadStatus() tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		status, err := client.AuthStatus(ctx)
		return statusLoadedMsg{status: status, err: err}
	}
}

// Refresh re-reads the snapshot
func (m Model) Refresh() tea.Cmd {
	return m.loadStatus()
}

// SelectedProvider is the provider under the cursor
func (m Model) SelectedProvider() models.Provider {
	return models.Providers()[m.cursor]
}

// CursorUp moves to the previous provider row
func (m *Model) CursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// CursorDown moves to the next provider row
func (m *Model) CursorDown() {
	if m.cursor < len(models.Providers())-1 {
		m.cursor++
	}
}

// EnteringChatID reports whether the chat-id input has focus, so the
// app routes keys here instead of treating them as shortcuts.
func (m Model) EnteringChatID() bool {
	return m.stage == telegramEnteringChatID
}

// Connect starts the selected provider's link flow. Telegram opens the
// guided flow in place; the browser providers are handled by the
// caller via ConnectRequestMsg.
func (m *Model) Connect() tea.Cmd {
	provider := m.SelectedProvider()
	if m.status != nil && m.status.Connected(provider) {
		return nil
	}
	if provider == models.ProviderTelegram {
		return m.startTelegramFlow()
	}
	return func() tea.Msg {
		return ConnectRequestMsg{Provider: provider}
	}
}

// ConnectRequestMsg asks the app to run the browser link flow
type ConnectRequestMsg struct {
	Provider models.Provider
}

// Disconnect unlinks the selected provider
func (m *Model) Disconnect() tea.Cmd {
	provider := m.SelectedProvider()
	if m.status == nil || !m.status.Connected(provider) || m.busy[provider] {
		return nil
	}
	m.busy[provider] = true
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.Disconnect(ctx, provider)
		return actionDoneMsg{provider: provider, action: "disconnect", result: result, err: err}
	}
}

// Test sends a test message through the selected provider
func (m *Model) Test() tea.Cmd {
	provider := m.SelectedProvider()
	if m.status == nil || !m.status.Connected(provider) || m.busy[provider] {
		return nil
	}
	m.busy[provider] = true
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.TestProvider(ctx, provider)
		return actionDoneMsg{provider: provider, action: "test", result: result, err: err}
	}
}

// RefreshKakao forces a Kakao token refresh
func (m *Model) RefreshKakao() tea.Cmd {
	if m.status == nil || !m.status.KakaoConnected || m.busy[models.ProviderKakao] {
		return nil
	}
	m.busy[models.ProviderKakao] = true
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.RefreshKakaoToken(ctx)
		return actionDoneMsg{provider: models.ProviderKakao, action: "refresh", result: result, err: err}
	}
}

func (m *Model) startTelegramFlow() tea.Cmd {
	m.stage = telegramShowingBot
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		info, err := client.TelegramBotInfo(ctx)
		return botInfoMsg{info: info, err: err}
	}
}

// BeginChatIDEntry moves the Telegram flow to the chat-id step
func (m *Model) BeginChatIDEntry() tea.Cmd {
	if m.stage != telegramShowingBot {
		return nil
	}
	m.stage = telegramEnteringChatID
	m.chatInput.SetValue("")
	return m.chatInput.Focus()
}

// SubmitChatID verifies the entered chat id
func (m *Model) SubmitChatID() tea.Cmd {
	if m.stage != telegramEnteringChatID {
		return nil
	}
	chatID := strings.TrimSpace(m.chatInput.Value())
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		result, err := client.VerifyTelegram(ctx, chatID)
		return verifiedMsg{result: result, err: err}
	}
}

// CancelTelegramFlow abandons the guided flow
func (m *Model) CancelTelegramFlow() {
	m.stage = telegramIdle
	m.botInfo = nil
	m.chatInput.Blur()
}

// Update handles this panel's messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.status = msg.status
		return m, nil

	case actionDoneMsg:
		delete(m.busy, msg.provider)
		if msg.err != nil {
			return m, toastCmd(true, msg.err.Error())
		}
		message := fmt.Sprintf("%s %s done", msg.provider, msg.action)
		if msg.result != nil && msg.result.Message != "" {
			message = msg.result.Message
		}
		// Disconnect and refresh change the snapshot; re-read it.
		if msg.action == "test" {
			return m, toastCmd(false, message)
		}
		return m, tea.Batch(toastCmd(false, message), m.loadStatus())

	case botInfoMsg:
		if msg.err != nil {
			m.stage = telegramIdle
			return m, toastCmd(true, msg.err.Error())
		}
		m.botInfo = msg.info
		return m, nil

	case verifiedMsg:
		if msg.err != nil {
			return m, toastCmd(true, msg.err.Error())
		}
		m.CancelTelegramFlow()
		message := "Telegram connected"
		if msg.result != nil && msg.result.Message != "" {
			message = msg.result.Message
		}
		return m, tea.Batch(toastCmd(false, message), m.loadStatus())

	case tea.KeyMsg:
		if m.stage == telegramEnteringChatID {
			var cmd tea.Cmd
			m.chatInput, cmd = m.chatInput.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func toastCmd(isErr bool, message string) tea.Cmd {
	return func() tea.Msg {
		return statuspanel.ToastMsg{Error: isErr, Message: message}
	}
}

// View renders the panel
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n")

	if m.loadErr != "" {
		b.WriteString(dimStyle.Render("Failed to load: " + m.loadErr))
		return b.String()
	}
	if m.status == nil {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}

	for i, provider := range models.Providers() {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		connected := m.status.Connected(provider)
		line := fmt.Sprintf("%s%s  %s", marker, providerStyle.Render(padProvider(provider)), format.ConnectedBadge(connected))
		if m.busy[provider] {
			line += dimStyle.Render("  working...")
		}
		b.WriteString(line + "\n")
	}

	switch m.stage {
	case telegramShowingBot:
		b.WriteString("\n")
		if m.botInfo == nil {
			b.WriteString(dimStyle.Render("Fetching bot info..."))
		} else {
			b.WriteString(fmt.Sprintf("Message %s to link Telegram:\n", providerStyle.Render("@"+m.botInfo.Username)))
			b.WriteString("  " + linkStyle.Render(m.botInfo.DeepLink) + "\n")
			b.WriteString(dimStyle.Render("Press enter once the bot replies with your chat id."))
		}
	case telegramEnteringChatID:
		b.WriteString("\n" + dimStyle.Render("Enter the chat id from the bot:") + "\n")
		b.WriteString(m.chatInput.View())
	default:
		b.WriteString("\n" + dimStyle.Render("c connect · d disconnect · t test · r refresh kakao"))
	}
	return b.String()
}

func padProvider(p models.Provider) string {
	return fmt.Sprintf("%-8s", string(p))
}
