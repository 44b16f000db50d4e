package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements token bucket rate limiting for notification APIs.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter that sustains requestsPerSecond with the
// given burst capacity. Telegram allows roughly one message per second per
// chat, so the Telegram channel uses NewRateLimiter(1.0, 1).
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
