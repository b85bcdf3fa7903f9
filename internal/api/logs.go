package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/notidash/internal/models"
)

// Logs retrieves the paginated, filterable log listing
func (c *Client) Logs(ctx context.Context, filter models.LogFilter) (*models.LogPage, error) {
	query := url.Values{}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}

	var page models.LogPage
	if err := c.get(ctx, "/api/logs", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RecentLogs retrieves the embedded feed: newest entries, no pagination
func (c *Client) RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	page, err := c.Logs(ctx, models.LogFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Logs, nil
}

// ModuleLogs retrieves one module's recent log feed
func (c *Client) ModuleLogs(ctx context.Context, category models.Category, limit int) ([]models.LogEntry, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page models.LogPage
	if err := c.get(ctx, fmt.Sprintf("/api/%s/logs", category), query, &page); err != nil {
		return nil, err
	}
	return page.Logs, nil
}

// LogStats retrieves the aggregate counts behind the logs page header
func (c *Client) LogStats(ctx context.Context) (*models.LogStats, error) {
	var stats models.LogStats
	if err := c.get(ctx, "/api/logs/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
