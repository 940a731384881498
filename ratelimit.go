package dispatch

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit layer.
type RateLimitConfig struct {
	Rate            float64                         // requests per second
	Burst           int                             // max burst
	KeyFunc         func(r *http.Request) string    // default: remote IP
	OnLimit         func(r *http.Request) *Response // default: 429 response
	CleanupInterval time.Duration                   // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                   // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns a layer that applies per-key rate limiting.
func RateLimit(cfg RateLimitConfig) Layer {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(r *http.Request) string {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				return r.RemoteAddr
			}
			return host
		}
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(_ *http.Request) *Response {
			res := NewResponse(http.StatusTooManyRequests)
			res.Header.Set("Retry-After", strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64))
			return res
		}
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(next Service) Service {
		return ServiceFunc(func(ctx context.Context, r *http.Request) (*Response, error) {
			key := cfg.KeyFunc(r)

			mu.Lock()
			now := time.Now()

			// Lazy cleanup of expired limiters.
			if now.Sub(lastCleanup) >= cleanupInterval {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > maxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{
					limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
				}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if !entry.limiter.Allow() {
				return cfg.OnLimit(r), nil
			}

			return next.Call(ctx, r)
		})
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
