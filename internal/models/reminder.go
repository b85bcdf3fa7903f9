package models

import (
	"time"
)

// Reminder is a one-off scheduled message. Terminal once sent or deleted.
type Reminder struct {
	ID             int64     `json:"reminder_id"`
	MessageContent string    `json:"message_content"`
	TargetDatetime time.Time `json:"target_datetime"`
	IsSent         bool      `json:"is_sent"`
	CreatedAt      time.Time `json:"created_at"`
}

// Overdue reports whether the reminder's target time has passed while unsent.
// Overdue rows are flagged in lists but never auto-removed.
func (r *Reminder) Overdue(now time.Time) bool {
	return !r.IsSent && r.TargetDatetime.Before(now)
}

// ReminderCreate is the create-request payload
type ReminderCreate struct {
	MessageContent string    `json:"message_content"`
	TargetDatetime time.Time `json:"target_datetime"`
}

// PendingCount is the reminders badge source on the dashboard
type PendingCount struct {
	Count int `json:"count"`
}
