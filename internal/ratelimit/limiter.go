package ratelimit

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limit is a requests-per-second ceiling with a burst allowance.
type Limit struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultLimit applies to endpoints without an explicit override.
func DefaultLimit() Limit {
	return Limit{RequestsPerSecond: 10, Burst: 20}
}

// EndpointLimiter throttles outbound calls to the flight backend per endpoint,
// so a burst of searches cannot starve booking submissions. Endpoints are
// identified by the first segment of the request path.
type EndpointLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Limit
}

// New builds a limiter with the given default and per-endpoint overrides.
func New(defaults Limit, overrides map[string]Limit) *EndpointLimiter {
	l := &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter, len(overrides)),
		defaults: defaults,
	}
	for endpoint, lim := range overrides {
		l.limiters[endpoint] = rate.NewLimiter(rate.Limit(lim.RequestsPerSecond), lim.Burst)
	}
	return l
}

// PathKey reduces a request path to the endpoint it is limited under: the
// first path segment, with surrounding slashes stripped.
func PathKey(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// WaitPath blocks until a call to the given request path may proceed, or the
// context is done.
func (l *EndpointLimiter) WaitPath(ctx context.Context, path string) error {
	return l.limiter(PathKey(path)).Wait(ctx)
}

func (l *EndpointLimiter) limiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[endpoint]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.limiters[endpoint]; ok {
		return lim
	}
	lim = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.Burst)
	l.limiters[endpoint] = lim
	return lim
}
