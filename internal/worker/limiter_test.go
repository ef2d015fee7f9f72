package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowsWithinBurst(t *testing.T) {
	l := NewLimiter(1000, 10)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "https://example.com/page"); err != nil {
			t.Fatalf("Expected no error within burst, got %v", err)
		}
	}
}

func TestLimiterSeparatesDomains(t *testing.T) {
	// Each domain gets its own bucket: exhausting one must not block
	// another.
	l := NewLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.Wait(ctx, "https://one.example.com/a"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := l.Wait(ctx, "https://two.example.com/a"); err != nil {
		t.Fatalf("Expected a fresh bucket for the second domain, got %v", err)
	}
}

func TestLimiterCancelledContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx, "https://example.com/a"); err != nil {
		t.Fatalf("Expected no error for the first request, got %v", err)
	}
	cancel()
	if err := l.Wait(ctx, "https://example.com/b"); err == nil {
		t.Error("Expected an error after cancellation, got nil")
	}
}

func TestLimiterBadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected an error for an unparsable URL, got nil")
	}
}
