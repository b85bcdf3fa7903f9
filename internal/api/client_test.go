package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/notidash/internal/models"
	"github.com/notidash/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "disabled", Format: "json"})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil, testLogger()), srv
}

func TestRequestSendsJSONHeaders(t *testing.T) {
	var gotContentType, gotAccept, gotCustom string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		gotCustom = r.Header.Get("X-Client")
		w.Write([]byte(`{}`))
	})
	client.headers.Set("X-Client", "notidash")

	if err := client.get(context.Background(), "/api/logs/stats", nil, &models.LogStats{}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotContentType != "application/json" || gotAccept != "application/json" {
		t.Fatalf("default headers missing: content-type=%q accept=%q", gotContentType, gotAccept)
	}
	if gotCustom != "notidash" {
		t.Fatalf("merged header missing, got %q", gotCustom)
	}
}

func TestErrorSurfacesServerDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "notification time is already taken"}`))
	})

	err := client.get(context.Background(), "/api/settings/weather", nil, &models.Setting{})
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Error() != "notification time is already taken" {
		t.Fatalf("detail not surfaced verbatim: %q", apiErr.Error())
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded, not json"))
	})

	err := client.get(context.Background(), "/api/logs", nil, &models.LogPage{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("generic label expected, got %q", err.Error())
	}
}

func TestAccountNotLinkedDetection(t *testing.T) {
	byCode := &Error{StatusCode: 400, Code: CodeAccountNotLinked, Detail: "whatever"}
	if !byCode.AccountNotLinked() {
		t.Fatalf("structured code not detected")
	}
	otherCode := &Error{StatusCode: 400, Code: "rate_limited", Detail: "account not connected"}
	if otherCode.AccountNotLinked() {
		t.Fatalf("explicit non-link code must win over text")
	}
	legacy := &Error{StatusCode: 400, Detail: "Kakao account not connected"}
	if !legacy.AccountNotLinked() {
		t.Fatalf("legacy substring fallback failed")
	}
	if !IsAccountNotLinked(legacy) {
		t.Fatalf("IsAccountNotLinked failed to unwrap")
	}
}

func TestLogsBuildsFilterQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.LogPage{Logs: []models.LogEntry{}, Total: 0, Count: 0})
	})

	_, err := client.Logs(context.Background(), models.LogFilter{
		Category: models.CategoryFinance,
		Status:   models.RunStatusFail,
		Limit:    50,
		Offset:   50,
	})
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	for _, want := range []string{"limit=50", "offset=50", "category=finance", "status=FAIL"} {
		if !containsParam(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func containsParam(query, param string) bool {
	for _, p := range splitQuery(query) {
		if p == param {
			return true
		}
	}
	return false
}

func splitQuery(query string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(query); i++ {
		if i == len(query) || query[i] == '&' {
			parts = append(parts, query[start:i])
			start = i + 1
		}
	}
	return parts
}

func TestCreateReminderRejectsPastClientSide(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	})

	_, err := client.CreateReminder(context.Background(), models.ReminderCreate{
		MessageContent: "water the plants",
		TargetDatetime: time.Now().Add(-time.Minute),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("past reminder reached the network (%d requests)", requests)
	}

	// "now" counts as not-future too.
	_, err = client.CreateReminder(context.Background(), models.ReminderCreate{
		MessageContent: "water the plants",
		TargetDatetime: time.Now(),
	})
	if !IsValidation(err) || requests != 0 {
		t.Fatalf("now-valued reminder slipped through: err=%v requests=%d", err, requests)
	}
}

func TestCreateReminderValidationOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	// Missing content fails first even when the time is also bad.
	_, err := client.CreateReminder(context.Background(), models.ReminderCreate{
		MessageContent: "   ",
		TargetDatetime: time.Time{},
	})
	if err == nil || err.Error() != "message content is required" {
		t.Fatalf("expected required-fields failure first, got %v", err)
	}

	_, err = client.CreateReminder(context.Background(), models.ReminderCreate{
		MessageContent: "x",
		TargetDatetime: time.Time{},
	})
	if err == nil || err.Error() != "target date and time are required" {
		t.Fatalf("expected missing-time failure second, got %v", err)
	}
}
