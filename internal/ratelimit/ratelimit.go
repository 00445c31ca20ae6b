// Package ratelimit paces requests sent to the alerts API.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces out API requests. A nil *Limiter never waits.
type Limiter struct {
	limiter *rate.Limiter
}

// New allows requestsPerSecond requests with a burst of one.
// Zero or a negative rate disables limiting.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Every allows one event per interval, the first without waiting.
// A non-positive interval disables limiting.
func Every(interval time.Duration) *Limiter {
	if interval <= 0 {
		return New(0)
	}

	return &Limiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.limiter.Wait(ctx)
}

// Limit returns the configured requests per second, 0 when unlimited.
func (l *Limiter) Limit() float64 {
	if l == nil {
		return 0
	}

	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
