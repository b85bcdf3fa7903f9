package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/notidash/internal/models"
)

// Reminders lists reminders, optionally filtered by sent state.
// Filtering always round-trips to the server rather than slicing locally.
func (c *Client) Reminders(ctx context.Context, isSent *bool) ([]models.Reminder, error) {
	query := url.Values{}
	if isSent != nil {
		query.Set("is_sent", strconv.FormatBool(*isSent))
	}
	var reminders []models.Reminder
	if err := c.get(ctx, "/api/reminders", query, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder validates and creates a one-off scheduled message.
// Checks run in order - required fields, parseable time, strictly future -
// and the first failure short-circuits before any network call.
func (c *Client) CreateReminder(ctx context.Context, create models.ReminderCreate) (*models.Reminder, error) {
	if strings.TrimSpace(create.MessageContent) == "" {
		return nil, validationErr("message content is required")
	}
	if create.TargetDatetime.IsZero() {
		return nil, validationErr("target date and time are required")
	}
	if !create.TargetDatetime.After(time.Now()) {
		return nil, validationErr("scheduled time must be in the future")
	}

	var reminder models.Reminder
	if err := c.post(ctx, "/api/reminders", create, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// DeleteReminder removes one reminder
func (c *Client) DeleteReminder(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/reminders/%d", id))
}

// PendingReminderCount reports how many reminders are still unsent
func (c *Client) PendingReminderCount(ctx context.Context) (int, error) {
	var count models.PendingCount
	if err := c.get(ctx, "/api/reminders/pending/count", nil, &count); err != nil {
		return 0, err
	}
	return count.Count, nil
}
