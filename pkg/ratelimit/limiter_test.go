package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestFixedDelayFirstCallDoesNotBlock(t *testing.T) {
	limiter := NewFixedDelay(time.Second)

	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait blocked for %v", elapsed)
	}
}

func TestFixedDelaySpacesRequests(t *testing.T) {
	limiter := NewFixedDelay(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("three requests took %v, want at least 100ms", elapsed)
	}
}

func TestFixedDelayZeroInterval(t *testing.T) {
	limiter := NewFixedDelay(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-interval limiter blocked for %v", elapsed)
	}
}

func TestFixedDelayRespectsCancellation(t *testing.T) {
	limiter := NewFixedDelay(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	if err := limiter.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait after cancel = %v, want context.Canceled", err)
	}
}
