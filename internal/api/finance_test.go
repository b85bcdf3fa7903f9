package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/notidash/internal/models"
)

func TestReorderWatchlistRecomputesOrder(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	})

	err := client.ReorderWatchlist(context.Background(), models.MarketUS, []int64{42, 7, 19})
	if err != nil {
		t.Fatalf("ReorderWatchlist: %v", err)
	}
	if gotMethod != "PUT" || gotPath != "/api/finance/watchlists/reorder" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}

	var payload models.WatchlistReorder
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if payload.Market != models.MarketUS {
		t.Fatalf("market = %q", payload.Market)
	}
	want := []models.WatchlistOrder{{ID: 42, Order: 0}, {ID: 7, Order: 1}, {ID: 19, Order: 2}}
	if len(payload.Items) != len(want) {
		t.Fatalf("items = %v", payload.Items)
	}
	for i, item := range payload.Items {
		if item != want[i] {
			t.Fatalf("item %d = %+v, want %+v", i, item, want[i])
		}
	}
}

func TestReorderWatchlistRejectsEmpty(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	if err := client.ReorderWatchlist(context.Background(), models.MarketKR, nil); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("empty reorder hit the network")
	}
}

func TestCreateAlertPriceType(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(models.PriceAlert{ID: 1})
	})

	// Zero value never reaches the network for price alerts.
	if _, err := client.CreateAlert(context.Background(), 3, models.AlertTargetHigh, 0); !IsValidation(err) {
		t.Fatalf("zero target price accepted: %v", err)
	}
	if gotBody != nil {
		t.Fatalf("invalid alert hit the network")
	}

	if _, err := client.CreateAlert(context.Background(), 3, models.AlertTargetHigh, 150.5); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if payload["target_price"] != 150.5 {
		t.Fatalf("target_price = %v", payload["target_price"])
	}
	if _, present := payload["target_percent"]; present {
		t.Fatalf("target_percent leaked into a price alert: %s", gotBody)
	}
}

func TestCreateAlertPercentType(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(models.PriceAlert{ID: 2})
	})

	if _, err := client.CreateAlert(context.Background(), 3, models.AlertPercentChange, 0); !IsValidation(err) {
		t.Fatalf("zero percent accepted: %v", err)
	}

	// Negative percent is a valid drop alert.
	if _, err := client.CreateAlert(context.Background(), 3, models.AlertPercentChange, -5); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if payload["target_percent"] != -5.0 {
		t.Fatalf("target_percent = %v", payload["target_percent"])
	}
	if _, present := payload["target_price"]; present {
		t.Fatalf("target_price leaked into a percent alert: %s", gotBody)
	}
}

func TestAddWatchlistItemNormalizesTicker(t *testing.T) {
	var gotBody []byte
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(models.WatchlistItem{ID: 1, Ticker: "AAPL"})
	})

	if _, err := client.AddWatchlistItem(context.Background(), "  aapl ", models.MarketUS); err != nil {
		t.Fatalf("AddWatchlistItem: %v", err)
	}
	if !strings.Contains(string(gotBody), `"ticker":"AAPL"`) {
		t.Fatalf("ticker not normalized: %s", gotBody)
	}

	if _, err := client.AddWatchlistItem(context.Background(), "   ", models.MarketUS); !IsValidation(err) {
		t.Fatalf("blank ticker accepted: %v", err)
	}
	if _, err := client.AddWatchlistItem(context.Background(), "AAPL", "JP"); !IsValidation(err) {
		t.Fatalf("unknown market accepted: %v", err)
	}
}
