package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/notidash/internal/format"
	"github.com/notidash/internal/models"
	"github.com/notidash/internal/tui/crudlist"
)

// jobItem adapts a scheduler job to a list row
type jobItem struct {
	job models.Job
}

func (it jobItem) ItemID() string { return it.job.ID }

func (it jobItem) Row() string {
	return fmt.Sprintf("%-24s next: %s", it.job.ID, format.DateTime(it.job.NextRunTime))
}

func jobItems(jobs []models.Job) []crudlist.Item {
	items := make([]crudlist.Item, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, jobItem{job: job})
	}
	return items
}

// reminderItem adapts a reminder; overdue rows are flagged, never hidden
type reminderItem struct {
	reminder models.Reminder
	now      time.Time
}

func (it reminderItem) ItemID() string {
	return strconv.FormatInt(it.reminder.ID, 10)
}

func (it reminderItem) Row() string {
	when := it.reminder.TargetDatetime
	row := fmt.Sprintf("%s  %s", format.DateTime(&when), format.Truncate(it.reminder.MessageContent, 50))
	if it.reminder.IsSent {
		row += "  (sent)"
	} else if it.reminder.Overdue(it.now) {
		row += "  (overdue)"
	}
	return row
}

func reminderItems(reminders []models.Reminder, now time.Time) []crudlist.Item {
	items := make([]crudlist.Item, 0, len(reminders))
	for _, r := range reminders {
		items = append(items, reminderItem{reminder: r, now: now})
	}
	return items
}

// watchItem adapts a watchlist entry
type watchItem struct {
	item models.WatchlistItem
}

func (it watchItem) ItemID() string {
	return strconv.FormatInt(it.item.ID, 10)
}

func (it watchItem) Row() string {
	name := it.item.Name
	if name == "" {
		name = format.Placeholder
	}
	return fmt.Sprintf("%-8s %s", it.item.Ticker, format.Truncate(name, 30))
}

func watchItems(items []models.WatchlistItem) []crudlist.Item {
	rows := make([]crudlist.Item, 0, len(items))
	for _, item := range items {
		rows = append(rows, watchItem{item: item})
	}
	return rows
}

// alertItem adapts a price alert
type alertItem struct {
	alert  models.PriceAlert
	market models.Market
}

func (it alertItem) ItemID() string {
	return strconv.FormatInt(it.alert.ID, 10)
}

func (it alertItem) Row() string {
	var target string
	switch {
	case it.alert.AlertType.IsPrice() && it.alert.TargetPrice != nil:
		target = format.Money(it.market, *it.alert.TargetPrice)
	case it.alert.TargetPercent != nil:
		target = format.Percent(*it.alert.TargetPercent)
	default:
		target = format.Placeholder
	}
	row := fmt.Sprintf("%-14s %s", it.alert.AlertType, target)
	if it.alert.IsTriggered {
		row += "  (triggered)"
	}
	return row
}

func alertItems(alerts []models.PriceAlert, market models.Market) []crudlist.Item {
	rows := make([]crudlist.Item, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, alertItem{alert: alert, market: market})
	}
	return rows
}
