package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/notidash/internal/models"
	"github.com/notidash/pkg/ratelimit"
)

// Watchlist lists tracked tickers, optionally for one market, ordered by
// the server-persisted display order
func (c *Client) Watchlist(ctx context.Context, market models.Market) ([]models.WatchlistItem, error) {
	query := url.Values{}
	if market != "" {
		query.Set("market", string(market))
	}
	var items []models.WatchlistItem
	if err := c.get(ctx, "/api/finance/watchlist", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddWatchlistItem adds a ticker to one market's list. The ticker is
// normalized to upper case; empty input never reaches the network.
func (c *Client) AddWatchlistItem(ctx context.Context, ticker string, market models.Market) (*models.WatchlistItem, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, validationErr("ticker is required")
	}
	if market != models.MarketUS && market != models.MarketKR {
		return nil, validationErr("market must be US or KR")
	}

	var item models.WatchlistItem
	if err := c.post(ctx, "/api/finance/watchlist", models.WatchlistAdd{Ticker: ticker, Market: market}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteWatchlistItem removes one tracked ticker
func (c *Client) DeleteWatchlistItem(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/finance/watchlist/%d", id))
}

// ReorderWatchlist persists one market's whole list order in a single
// batch. Display order is recomputed from the given slice order (0-based);
// callers revert by reloading on failure rather than patching locally.
func (c *Client) ReorderWatchlist(ctx context.Context, market models.Market, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return validationErr("nothing to reorder")
	}
	reorder := models.WatchlistReorder{
		Market: market,
		Items:  make([]models.WatchlistOrder, 0, len(orderedIDs)),
	}
	for i, id := range orderedIDs {
		reorder.Items = append(reorder.Items, models.WatchlistOrder{ID: id, Order: i})
	}
	return c.put(ctx, "/api/finance/watchlists/reorder", reorder, nil)
}

// Alerts lists price alerts, optionally for one watchlist item
func (c *Client) Alerts(ctx context.Context, watchlistID int64) ([]models.PriceAlert, error) {
	query := url.Values{}
	if watchlistID > 0 {
		query.Set("watchlist_id", fmt.Sprintf("%d", watchlistID))
	}
	var alerts []models.PriceAlert
	if err := c.get(ctx, "/api/finance/alerts", query, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// CreateAlert validates and creates a price alert. Exactly one of
// target price / target percent is sent, selected by the alert type;
// price-type alerts require a strictly positive value.
func (c *Client) CreateAlert(ctx context.Context, watchlistID int64, alertType models.AlertType, value float64) (*models.PriceAlert, error) {
	if watchlistID <= 0 {
		return nil, validationErr("select a watchlist item first")
	}

	create := models.PriceAlertCreate{
		WatchlistID: watchlistID,
		AlertType:   alertType,
	}
	switch alertType {
	case models.AlertTargetHigh, models.AlertTargetLow:
		if value <= 0 {
			return nil, validationErr("target price must be greater than zero")
		}
		create.TargetPrice = &value
	case models.AlertPercentChange:
		if value == 0 {
			return nil, validationErr("target percent must be non-zero")
		}
		create.TargetPercent = &value
	default:
		return nil, validationErr(fmt.Sprintf("unknown alert type %q", alertType))
	}

	var alert models.PriceAlert
	if err := c.post(ctx, "/api/finance/alerts", create, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes one price alert
func (c *Client) DeleteAlert(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/finance/alerts/%d", id))
}

// Quote fetches the quote detail for one ticker. Quote lookups fan out to
// an external market data provider, so they run under their own limiter.
func (c *Client) Quote(ctx context.Context, ticker string, market models.Market) (*models.Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, validationErr("ticker is required")
	}
	query := url.Values{}
	if market != "" {
		query.Set("market", string(market))
	}

	var quote models.Quote
	if err := c.doLimited(ctx, ratelimit.LimiterQuotes, "GET", fmt.Sprintf("/api/finance/quote/%s", ticker), query, nil, &quote); err != nil {
		return nil, err
	}
	if quote.Market == "" {
		quote.Market = market
	}
	return &quote, nil
}
