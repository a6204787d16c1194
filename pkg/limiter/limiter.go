// Package limiter wraps providers with a token bucket so that remote calls
// stay within a configured requests-per-second budget.
package limiter

import (
	"golang.org/x/time/rate"
)

type Limiter interface {
	limiterSetup()
}

// New allows limit calls per second with bursts of the same size. A limit of
// zero or less disables limiting.
func New(limit int) *rate.Limiter {
	if limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(limit), limit)
}
