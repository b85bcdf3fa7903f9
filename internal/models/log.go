package models

import (
	"time"
)

// Category identifies one notification module
type Category string

const (
	CategoryWeather  Category = "weather"
	CategoryFinance  Category = "finance"
	CategoryCalendar Category = "calendar"
	CategoryMemo     Category = "memo"
)

// Categories lists the closed category vocabulary in display order
func Categories() []Category {
	return []Category{CategoryWeather, CategoryFinance, CategoryCalendar, CategoryMemo}
}

// RunStatus represents the outcome of one notification run
type RunStatus string

const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFail    RunStatus = "FAIL"
	RunStatusSkip    RunStatus = "SKIP"
)

// LogEntry is one delivery log row, read-only and server-ordered (newest first)
type LogEntry struct {
	ID        int64     `json:"id"`
	Category  Category  `json:"category"`
	Status    RunStatus `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// LogPage is the server's paginated log response.
// Total always comes from the server, never from summing local pages.
type LogPage struct {
	Logs  []LogEntry `json:"logs"`
	Total int        `json:"total"`
	Count int        `json:"count"`
}

// LogStats is the aggregate view behind the logs page header
type LogStats struct {
	TotalLogs int               `json:"total_logs"`
	ByStatus  map[RunStatus]int `json:"by_status"`
}

// LogFilter narrows a log listing. Zero values mean "no filter".
type LogFilter struct {
	Category Category
	Status   RunStatus
	Limit    int
	Offset   int
}
