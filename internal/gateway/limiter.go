package gateway

import (
	"sync"

	"github.com/LuckyFay12/shareit/internal/config"

	"golang.org/x/time/rate"
)

// userLimiter keeps one token bucket per caller. Callers are keyed by the
// identity header when present, otherwise by remote address.
type userLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newUserLimiter(cfg config.RateLimitConfig) *userLimiter {
	rps := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		rps = rate.Inf
	}
	return &userLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    cfg.Burst,
	}
}

func (l *userLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
