package api

import (
	"context"
	"fmt"

	"github.com/notidash/internal/models"
)

// AuthStatus retrieves the tri-provider link snapshot
func (c *Client) AuthStatus(ctx context.Context) (*models.AuthConnectionStatus, error) {
	var status models.AuthConnectionStatus
	if err := c.get(ctx, "/api/dashboard/auth-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ProviderStatus retrieves one provider's own status
func (c *Client) ProviderStatus(ctx context.Context, provider models.Provider) (*models.ProviderStatus, error) {
	var status models.ProviderStatus
	if err := c.get(ctx, fmt.Sprintf("/auth/%s/status", provider), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartURL is the browser URL that begins a provider's server-owned
// connect flow. The client never exchanges tokens itself; it only opens
// this URL and waits for the redirect.
func (c *Client) StartURL(provider models.Provider, callbackURL string) string {
	u := fmt.Sprintf("%s/auth/%s/start", c.baseURL, provider)
	if callbackURL != "" {
		u += "?redirect_uri=" + callbackURL
	}
	return u
}

// Disconnect unlinks one provider
func (c *Client) Disconnect(ctx context.Context, provider models.Provider) (*models.ActionResult, error) {
	var result models.ActionResult
	if err := c.post(ctx, fmt.Sprintf("/auth/%s/disconnect", provider), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TestProvider sends a test message through one provider's channel
func (c *Client) TestProvider(ctx context.Context, provider models.Provider) (*models.ActionResult, error) {
	var result models.ActionResult
	if err := c.post(ctx, fmt.Sprintf("/auth/%s/test", provider), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RefreshKakaoToken forces a Kakao token refresh on the backend
func (c *Client) RefreshKakaoToken(ctx context.Context) (*models.ActionResult, error) {
	var result models.ActionResult
	if err := c.post(ctx, "/auth/kakao/refresh", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TelegramBotInfo fetches the bot identity for the guided Telegram flow
func (c *Client) TelegramBotInfo(ctx context.Context) (*models.TelegramBotInfo, error) {
	var info models.TelegramBotInfo
	if err := c.get(ctx, "/auth/telegram/bot", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// VerifyTelegram checks a manually entered chat id against the backend
func (c *Client) VerifyTelegram(ctx context.Context, chatID string) (*models.ActionResult, error) {
	if chatID == "" {
		return nil, validationErr("chat id is required")
	}
	var result models.ActionResult
	if err := c.post(ctx, "/auth/telegram/verify", models.TelegramVerify{ChatID: chatID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
