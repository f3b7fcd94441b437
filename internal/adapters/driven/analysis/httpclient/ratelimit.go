package httpclient

import (
	"golang.org/x/time/rate"
)

// newLimiter returns a token bucket for rps requests per second. A zero
// rate leaves outbound requests unthrottled.
func newLimiter(rps float64) *rate.Limiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return rate.NewLimiter(limit, 1)
}
