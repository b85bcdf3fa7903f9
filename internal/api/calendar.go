package api

import (
	"context"

	"github.com/notidash/internal/models"
)

// Calendars lists the user's Google calendars
func (c *Client) Calendars(ctx context.Context) ([]models.CalendarInfo, error) {
	var calendars []models.CalendarInfo
	if err := c.get(ctx, "/api/calendar/list", nil, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// SelectedCalendar returns the calendar notifications are read from.
// A failure here is partial data: callers still render the calendar list.
func (c *Client) SelectedCalendar(ctx context.Context) (*models.CalendarInfo, error) {
	var calendar models.CalendarInfo
	if err := c.get(ctx, "/api/calendar/selected", nil, &calendar); err != nil {
		return nil, err
	}
	return &calendar, nil
}

// SelectCalendar picks which calendar the module reads
func (c *Client) SelectCalendar(ctx context.Context, calendarID string) error {
	if calendarID == "" {
		return validationErr("calendar id is required")
	}
	return c.post(ctx, "/api/calendar/select", models.CalendarSelect{CalendarID: calendarID}, nil)
}
