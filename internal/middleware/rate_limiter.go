package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shortsgen/backend/internal/config"
)

const defaultClientTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter controls how frequently a caller may start work.
type RateLimiter interface {
	Allow(key string) bool
}

// keyedRateLimiter keeps a token bucket per key, typically "<scope>:<client ip>", and forgets
// keys that stay idle longer than ttl.
type keyedRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

// NewIPRateLimiter allows `requests` events per `window` for each key plus `burst` extra.
func NewIPRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) RateLimiter {
	return newKeyedRateLimiter(requests, window, burst, ttl)
}

// RateLimiterFromConfig returns nil when cfg.Requests is not positive, which disables limiting.
func RateLimiterFromConfig(cfg config.RateLimitConfig) RateLimiter {
	if cfg.Requests <= 0 {
		return nil
	}
	return newKeyedRateLimiter(cfg.Requests, cfg.Window, cfg.Burst, defaultClientTTL)
}

func newKeyedRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) *keyedRateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = defaultClientTTL
	}

	return &keyedRateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *keyedRateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.evictLocked(now)
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

func (l *keyedRateLimiter) evictLocked(now time.Time) {
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.clients, key)
		}
	}
}
