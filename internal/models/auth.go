package models

// Provider identifies an external identity/messaging provider
type Provider string

const (
	ProviderKakao    Provider = "kakao"
	ProviderGoogle   Provider = "google"
	ProviderTelegram Provider = "telegram"
)

// Providers lists the closed provider vocabulary in display order
func Providers() []Provider {
	return []Provider{ProviderKakao, ProviderGoogle, ProviderTelegram}
}

// AuthConnectionStatus is the tri-provider link snapshot.
// Each provider's controls key off its own flag only.
type AuthConnectionStatus struct {
	KakaoConnected    bool `json:"kakao_connected"`
	GoogleConnected   bool `json:"google_connected"`
	TelegramConnected bool `json:"telegram_connected"`
}

// Connected returns the flag for one provider
func (s AuthConnectionStatus) Connected(p Provider) bool {
	switch p {
	case ProviderKakao:
		return s.KakaoConnected
	case ProviderGoogle:
		return s.GoogleConnected
	case ProviderTelegram:
		return s.TelegramConnected
	}
	return false
}

// ProviderStatus is one provider's own status response
type ProviderStatus struct {
	Connected bool   `json:"connected"`
	Detail    string `json:"detail,omitempty"`
}

// TelegramBotInfo describes the bot the user must message to link Telegram
type TelegramBotInfo struct {
	Username string `json:"username"`
	DeepLink string `json:"deep_link"`
}

// TelegramVerify is the chat-id verification payload
type TelegramVerify struct {
	ChatID string `json:"chat_id"`
}

// ActionResult is the generic {message} response for mutating actions
type ActionResult struct {
	Message string `json:"message"`
}

// CalendarInfo is one Google calendar the user may select
type CalendarInfo struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Primary  bool   `json:"primary"`
	Selected bool   `json:"selected"`
}

// CalendarSelect is the calendar selection payload
type CalendarSelect struct {
	CalendarID string `json:"calendar_id"`
}
