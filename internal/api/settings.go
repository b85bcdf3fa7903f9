package api

import (
	"context"
	"fmt"

	"github.com/notidash/internal/models"
	"github.com/notidash/internal/schedule"
)

// ModuleStatus retrieves one module's status snapshot
func (c *Client) ModuleStatus(ctx context.Context, category models.Category) (*models.StatusSummary, error) {
	var status models.StatusSummary
	if err := c.get(ctx, fmt.Sprintf("/api/%s/status", category), nil, &status); err != nil {
		return nil, err
	}
	if status.Category == "" {
		status.Category = category
	}
	return &status, nil
}

// ListSettings retrieves every module's settings row
func (c *Client) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	if err := c.get(ctx, "/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetSetting retrieves one module's settings
func (c *Client) GetSetting(ctx context.Context, category models.Category) (*models.Setting, error) {
	var setting models.Setting
	if err := c.get(ctx, fmt.Sprintf("/api/settings/%s", category), nil, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpdateSetting writes a partial settings change. A notification time, when
// present, is validated client-side before anything goes on the wire.
func (c *Client) UpdateSetting(ctx context.Context, category models.Category, update models.SettingUpdate) error {
	if update.NotificationTime != nil {
		if *update.NotificationTime == "" {
			return validationErr("notification time is required")
		}
		if err := schedule.ValidateNotificationTime(*update.NotificationTime); err != nil {
			return validationErr(err.Error())
		}
	}
	return c.put(ctx, fmt.Sprintf("/api/settings/%s", category), update, nil)
}

// Preview fetches a module's rendered notification message without sending.
// variant selects a sub-preview where the module has one (finance "us"/"kr").
func (c *Client) Preview(ctx context.Context, category models.Category, variant string) (*models.ActionResult, error) {
	path := fmt.Sprintf("/api/%s/preview", category)
	if variant != "" {
		path += "/" + variant
	}
	var result models.ActionResult
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
