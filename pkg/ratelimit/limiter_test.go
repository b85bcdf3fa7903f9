package ratelimit

import (
	"context"
	"testing"
)

func TestDefaultLimiterCoversBackendAndQuotes(t *testing.T) {
	m := NewDefaultLimiter()
	for _, name := range []string{LimiterBackend, LimiterQuotes} {
		if !m.Allow(name) {
			t.Fatalf("limiter %q refused the first event", name)
		}
	}
}

func TestUnknownLimiterName(t *testing.T) {
	m := NewMultiLimiter()

	if m.Allow("nope") {
		t.Fatalf("Allow passed an unregistered limiter")
	}
	if err := m.Wait(context.Background(), "nope"); err == nil {
		t.Fatalf("Wait passed an unregistered limiter")
	}
	if _, err := m.Reserve("nope"); err == nil {
		t.Fatalf("Reserve passed an unregistered limiter")
	}
}

func TestBurstExhaustion(t *testing.T) {
	m := NewMultiLimiter()
	m.AddLimiter("slow", 0.001, 2)

	if !m.Allow("slow") || !m.Allow("slow") {
		t.Fatalf("burst not honored")
	}
	if m.Allow("slow") {
		t.Fatalf("event allowed past the burst at a near-zero rate")
	}

	r, err := m.Reserve("slow")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if r.Delay() == 0 {
		t.Fatalf("reservation on an exhausted limiter reported no wait")
	}
	r.Cancel()
}
