package httpclient

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures client-side rate limiting.
//
// Semantria subscriptions carry a calls-per-minute quota; limiting on the
// client side turns quota errors into local waits.
type RateLimitConfig struct {
	// RequestsPerSecond is the maximum sustained request rate.
	// Zero or negative disables rate limiting.
	RequestsPerSecond float64

	// Burst is the maximum number of requests allowed at once.
	Burst int

	// WaitOnLimit makes requests wait for a token, bounded by the request
	// context. When false, requests fail immediately with ErrRateLimited.
	WaitOnLimit bool
}

// PerMinute returns a waiting RateLimitConfig for a calls-per-minute quota.
func PerMinute(calls int) RateLimitConfig {
	burst := calls / 10
	if burst < 1 {
		burst = 1
	}
	return RateLimitConfig{
		RequestsPerSecond: float64(calls) / 60,
		Burst:             burst,
		WaitOnLimit:       true,
	}
}

// ErrRateLimited is returned when a request is rejected due to rate limiting.
var ErrRateLimited = errors.New("rate limit exceeded")

// rateLimitTransport implements http.RoundTripper with rate limiting.
type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
	wait    bool
	metrics *metrics
}

// newRateLimitTransport wraps next with a limiter, or returns next unchanged
// when rate limiting is disabled.
func newRateLimitTransport(next http.RoundTripper, cfg *internalConfig) http.RoundTripper {
	rl := cfg.RateLimit
	if rl.RequestsPerSecond <= 0 {
		return next
	}

	burst := rl.Burst
	if burst <= 0 {
		burst = 1
	}

	return &rateLimitTransport{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), burst),
		wait:    rl.WaitOnLimit,
		metrics: cfg.Metrics,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if !t.wait {
		if !t.limiter.Allow() {
			t.metrics.recordRateLimited(ctx)
			return nil, ErrRateLimited
		}
		return t.next.RoundTrip(req)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		t.metrics.recordRateLimited(ctx)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		// Wait also fails when the context deadline falls before the
		// next available token.
		return nil, ErrRateLimited
	}

	return t.next.RoundTrip(req)
}
