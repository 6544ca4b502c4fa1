package request

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle blocks until interval has elapsed since last. A zero last or a
// non-positive interval returns immediately. The wait is aborted if ctx is
// done.
func Throttle(ctx context.Context, last time.Time, interval time.Duration) error {
	if last.IsZero() || interval <= 0 {
		return nil
	}
	wait := time.Until(last.Add(interval))
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewRateLimit creates a new RateLimit based of time interval and how many
// actions allowed and breaks it down to an actions-per-second basis -- Burst
// rate is kept as one as this is not supported for out-bound requests.
func NewRateLimit(interval time.Duration, actions int) *rate.Limiter {
	if actions <= 0 || interval <= 0 {
		// Returns an un-restricted rate limiter
		return rate.NewLimiter(rate.Inf, 1)
	}

	i := 1 / interval.Seconds()
	rps := i * float64(actions)
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// WithMinimumInterval sets the minimum time between the end of one request
// and the start of the next
func WithMinimumInterval(d time.Duration) RequesterOption {
	return func(r *Requester) {
		r.minInterval = d
	}
}

// WithLimiter sets a request budget applied after the minimum interval
// throttle
func WithLimiter(l *rate.Limiter) RequesterOption {
	return func(r *Requester) {
		r.limiter = l
	}
}

// WithUserAgent sets the User-Agent header for every request
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.UserAgent = ua
	}
}
