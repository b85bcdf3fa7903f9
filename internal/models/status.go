package models

import (
	"time"
)

// StatusSummary is one module's status snapshot, drives toggle + badge rendering
type StatusSummary struct {
	Category    Category   `json:"category"`
	IsActive    bool       `json:"is_active"`
	NextRunTime *time.Time `json:"next_run_time"`
	LastRunTime *time.Time `json:"last_run_time"`
	LastStatus  RunStatus  `json:"last_status"`

	// Finance splits next-run per market; other modules leave these nil.
	USNextRunTime *time.Time `json:"us_next_run_time,omitempty"`
	KRNextRunTime *time.Time `json:"kr_next_run_time,omitempty"`

	// Calendar reports its Google link state alongside the schedule.
	GoogleConnected *bool `json:"google_connected,omitempty"`
}

// Setting is one module's persisted configuration
type Setting struct {
	Category         Category `json:"category"`
	IsActive         bool     `json:"is_active"`
	NotificationTime string   `json:"notification_time"` // "HH:MM"
}

// SettingUpdate is a partial settings write; nil fields are left untouched
type SettingUpdate struct {
	IsActive         *bool   `json:"is_active,omitempty"`
	NotificationTime *string `json:"notification_time,omitempty"`
}

// SchedulerStatus reports whether the backend scheduler loop is up
type SchedulerStatus struct {
	IsRunning bool `json:"is_running"`
	JobCount  int  `json:"job_count"`
}

// Job is one scheduled backend task. The ID is an opaque string
// encoding module and schedule (e.g. "weather_daily").
type Job struct {
	ID          string     `json:"id"`
	NextRunTime *time.Time `json:"next_run_time"`
}

// JobList is the scheduler's job listing response
type JobList struct {
	Jobs []Job `json:"jobs"`
}
