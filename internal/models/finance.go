package models

import (
	"time"
)

// Market identifies which exchange a ticker trades on
type Market string

const (
	MarketUS Market = "US"
	MarketKR Market = "KR"
)

// WatchlistItem is one tracked ticker. Order is persisted explicitly via
// DisplayOrder, not implied by array position alone.
type WatchlistItem struct {
	ID           int64  `json:"id"`
	Ticker       string `json:"ticker"`
	Name         string `json:"name,omitempty"`
	Market       Market `json:"market"`
	DisplayOrder int    `json:"display_order"`
}

// WatchlistAdd is the add-request payload
type WatchlistAdd struct {
	Ticker string `json:"ticker"`
	Market Market `json:"market"`
}

// WatchlistOrder is one entry of the batch reorder payload
type WatchlistOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// WatchlistReorder persists a whole market's list order in one write
type WatchlistReorder struct {
	Market Market           `json:"market"`
	Items  []WatchlistOrder `json:"items"`
}

// AlertType selects which threshold a price alert watches
type AlertType string

const (
	AlertTargetHigh    AlertType = "TARGET_HIGH"
	AlertTargetLow     AlertType = "TARGET_LOW"
	AlertPercentChange AlertType = "PERCENT_CHANGE"
)

// IsPrice reports whether the alert type carries a target price
// (as opposed to a target percent move).
func (t AlertType) IsPrice() bool {
	return t == AlertTargetHigh || t == AlertTargetLow
}

// PriceAlert is a user-defined trigger on a watchlist item.
// Exactly one of TargetPrice/TargetPercent is set, per AlertType.
type PriceAlert struct {
	ID            int64      `json:"id"`
	WatchlistID   int64      `json:"watchlist_id"`
	Ticker        string     `json:"ticker,omitempty"`
	AlertType     AlertType  `json:"alert_type"`
	TargetPrice   *float64   `json:"target_price,omitempty"`
	TargetPercent *float64   `json:"target_percent,omitempty"`
	IsTriggered   bool       `json:"is_triggered"`
	CreatedAt     time.Time  `json:"created_at"`
	TriggeredAt   *time.Time `json:"triggered_at,omitempty"`
}

// PriceAlertCreate is the create-request payload
type PriceAlertCreate struct {
	WatchlistID   int64     `json:"watchlist_id"`
	AlertType     AlertType `json:"alert_type"`
	TargetPrice   *float64  `json:"target_price,omitempty"`
	TargetPercent *float64  `json:"target_percent,omitempty"`
}

// PeriodChange is one row of the quote detail's period breakdown
type PeriodChange struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// Quote is the quote-detail view for one ticker
type Quote struct {
	Ticker        string         `json:"ticker"`
	Name          string         `json:"name,omitempty"`
	Market        Market         `json:"market"`
	Price         float64        `json:"price"`
	ChangePercent float64        `json:"change_percent"`
	Periods       []PeriodChange `json:"periods,omitempty"`
	Week52High    *float64       `json:"week_52_high,omitempty"`
	Week52Low     *float64       `json:"week_52_low,omitempty"`
}
