package authpanel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/notidash/internal/models"
	"github.com/notidash/internal/tui/statuspanel"
)

func loadedPanel(status models.AuthConnectionStatus) Model {
	m := New(context.Background(), nil)
	m, _ = m.Update(statusLoadedMsg{status: &status})
	return m
}

func TestControlsKeyOffOwnFlagOnly(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{KakaoConnected: true})

	// Kakao (connected): disconnect allowed, connect refused.
	if cmd := m.Connect(); cmd != nil {
		t.Fatalf("connect offered for a linked provider")
	}
	if cmd := m.Disconnect(); cmd == nil {
		t.Fatalf("disconnect refused for a linked provider")
	}

	// Google (not connected): connect emits the browser request,
	// disconnect and test are refused.
	m = loadedPanel(models.AuthConnectionStatus{KakaoConnected: true})
	m.CursorDown()
	cmd := m.Connect()
	if cmd == nil {
		t.Fatalf("connect refused for an unlinked provider")
	}
	msg := cmd()
	req, ok := msg.(ConnectRequestMsg)
	if !ok || req.Provider != models.ProviderGoogle {
		t.Fatalf("expected google connect request, got %#v", msg)
	}
	if cmd := m.Disconnect(); cmd != nil {
		t.Fatalf("disconnect offered for an unlinked provider")
	}
	if cmd := m.Test(); cmd != nil {
		t.Fatalf("test offered for an unlinked provider")
	}
}

func TestRefreshKakaoOnlyWhenLinked(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{})
	if cmd := m.RefreshKakao(); cmd != nil {
		t.Fatalf("refresh offered with kakao unlinked")
	}
}

func TestBusyProviderRefusesSecondAction(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{TelegramConnected: true})
	m.CursorDown()
	m.CursorDown()
	if cmd := m.Test(); cmd == nil {
		t.Fatalf("first test refused")
	}
	if cmd := m.Test(); cmd != nil {
		t.Fatalf("second test issued while one in flight")
	}

	m, _ = m.Update(actionDoneMsg{provider: models.ProviderTelegram, action: "test", result: &models.ActionResult{Message: "sent"}})
	if cmd := m.Test(); cmd == nil {
		t.Fatalf("test still refused after completion")
	}
}

func TestActionFailureBecomesErrorToast(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{GoogleConnected: true})
	m.CursorDown()
	m.Disconnect()

	m, cmd := m.Update(actionDoneMsg{provider: models.ProviderGoogle, action: "disconnect", err: errors.New("revoke failed")})
	if cmd == nil {
		t.Fatalf("expected toast command")
	}
	toastMsg, ok := cmd().(statuspanel.ToastMsg)
	if !ok || !toastMsg.Error || toastMsg.Message != "revoke failed" {
		t.Fatalf("unexpected toast %#v", toastMsg)
	}
	// A failed disconnect leaves the snapshot alone.
	if !m.status.GoogleConnected {
		t.Fatalf("snapshot mutated on failure")
	}
}

func TestTelegramGuidedFlow(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{})
	m.CursorDown()
	m.CursorDown()

	if cmd := m.Connect(); cmd == nil {
		t.Fatalf("telegram connect refused")
	}
	if m.stage != telegramShowingBot {
		t.Fatalf("stage = %d after connect", m.stage)
	}

	m, _ = m.Update(botInfoMsg{info: &models.TelegramBotInfo{Username: "notidash_bot", DeepLink: "https://t.me/notidash_bot"}})
	view := m.View()
	if !strings.Contains(view, "notidash_bot") || !strings.Contains(view, "https://t.me/notidash_bot") {
		t.Fatalf("bot info missing from view:\n%s", view)
	}

	if cmd := m.BeginChatIDEntry(); cmd == nil {
		t.Fatalf("chat id entry refused")
	}
	if !m.EnteringChatID() {
		t.Fatalf("input not focused")
	}

	m.chatInput.SetValue("123456")
	if cmd := m.SubmitChatID(); cmd == nil {
		t.Fatalf("submit refused")
	}

	m, cmd := m.Update(verifiedMsg{result: &models.ActionResult{Message: "Telegram connected"}})
	if m.stage != telegramIdle {
		t.Fatalf("flow did not close after verify")
	}
	if cmd == nil {
		t.Fatalf("expected toast + status reload")
	}
}

func TestTelegramVerifyFailureKeepsFlowOpen(t *testing.T) {
	m := loadedPanel(models.AuthConnectionStatus{})
	m.CursorDown()
	m.CursorDown()
	m.Connect()
	m, _ = m.Update(botInfoMsg{info: &models.TelegramBotInfo{Username: "bot"}})
	m.BeginChatIDEntry()

	m, cmd := m.Update(verifiedMsg{err: errors.New("unknown chat id")})
	if cmd == nil {
		t.Fatalf("expected error toast")
	}
	if !m.EnteringChatID() {
		t.Fatalf("flow closed on a failed verify; user should retry")
	}
}

func TestPartialFailureRendersOtherProviders(t *testing.T) {
	m := New(context.Background(), nil)
	m, _ = m.Update(statusLoadedMsg{err: errors.New("boom")})
	view := m.View()
	if !strings.Contains(view, "Failed to load") {
		t.Fatalf("load failure not surfaced:\n%s", view)
	}

	// A later successful load recovers the panel.
	m, _ = m.Update(statusLoadedMsg{status: &models.AuthConnectionStatus{KakaoConnected: true}})
	view = m.View()
	if !strings.Contains(view, "kakao") {
		t.Fatalf("recovered view missing provider rows:\n%s", view)
	}
}
