package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		requestsPerSecond float64
		wantLimit         float64
	}{
		{name: "unlimited_zero", requestsPerSecond: 0, wantLimit: 0},
		{name: "unlimited_negative", requestsPerSecond: -1, wantLimit: 0},
		{name: "one_per_second", requestsPerSecond: 1, wantLimit: 1},
		{name: "fractional", requestsPerSecond: 0.5, wantLimit: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.requestsPerSecond)
			if got := limiter.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %f, want %f", got, tt.wantLimit)
			}
		})
	}
}

func TestEvery(t *testing.T) {
	if got := Every(0).Limit(); got != 0 {
		t.Errorf("Every(0).Limit() = %f, want 0", got)
	}
	if got := Every(500 * time.Millisecond).Limit(); got != 2 {
		t.Errorf("Every(500ms).Limit() = %f, want 2", got)
	}
}

func TestEvery_Wait(t *testing.T) {
	limiter := Every(40 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first Wait() failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("first Wait() took %v, want no wait", elapsed)
	}

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("second Wait() failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("second Wait() returned after %v, want about 40ms", elapsed)
	}
}

func TestLimiter_Wait(t *testing.T) {
	t.Run("unlimited_no_wait", func(t *testing.T) {
		limiter := New(0)
		start := time.Now()
		for range 5 {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("Wait() failed: %v", err)
			}
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
			t.Errorf("unlimited limiter took %v", elapsed)
		}
	})

	t.Run("limited_waits", func(t *testing.T) {
		limiter := New(20)
		ctx := context.Background()

		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("first Wait() failed: %v", err)
		}

		start := time.Now()
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("second Wait() failed: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
			t.Errorf("second request waited %v, want about 50ms", elapsed)
		}
	})

	t.Run("context_cancellation", func(t *testing.T) {
		limiter := New(1)
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("first Wait() failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if err := limiter.Wait(ctx); err == nil {
			t.Error("expected an error when the context ends before a token is available")
		}
	})

	t.Run("nil_limiter_honours_context", func(t *testing.T) {
		var limiter *Limiter
		if limiter.Limit() != 0 {
			t.Error("nil limiter should not limit")
		}
		if err := limiter.Wait(context.Background()); err != nil {
			t.Errorf("Wait() = %v, want nil", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := limiter.Wait(ctx); err == nil {
			t.Error("expected context error")
		}
	})
}
