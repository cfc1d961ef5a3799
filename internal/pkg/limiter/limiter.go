/*
Package limiter provides keyed rate limiting based on the Token Bucket algorithm
(rate.Limiter).

The bot uses it in three places: throttling outbound chat messages, limiting how
fast individual users may issue commands, and limiting status API requests by
client IP. A background goroutine periodically removes inactive limiters to
prevent unbounded growth of the key map.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jumpinbot/internal/pkg/errs"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/resp"
)

// cleanupInterval is how often inactive limiters are swept from the map.
const cleanupInterval = 3 * time.Minute

// KeyedLimiter implements a concurrency-safe rate limiter keyed by an arbitrary
// string (user ID, IP address).
type KeyedLimiter struct {
	// mu protects concurrent access to the limits map.
	mu sync.RWMutex

	// limits stores the map from key to the *rate.Limiter instance.
	limits map[string]*rate.Limiter

	// r is the number of events allowed per second.
	r rate.Limit

	// b is the burst size (token bucket capacity).
	b int
}

// NewKeyedLimiter creates a new KeyedLimiter with rate r and burst capacity b,
// and starts a background goroutine that periodically cleans up inactive keys.
func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	k := &KeyedLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go k.cleanUp()

	return k
}

// GetLimiter retrieves the rate limiter for the given key, creating it on first
// use. Double-checked locking keeps creation concurrent-safe.
func (k *KeyedLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.RLock()
	limiter, exists := k.limits[key]
	k.mu.RUnlock()

	if !exists {
		k.mu.Lock()
		limiter, exists = k.limits[key]
		if !exists {
			limiter = rate.NewLimiter(k.r, k.b)
			k.limits[key] = limiter
		}
		k.mu.Unlock()
	}

	return limiter
}

// Allow reports whether an event for the given key may proceed now.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.GetLimiter(key).Allow()
}

// cleanUp periodically removes limiters whose token bucket is full, i.e. keys
// that have been inactive long enough to refill completely.
func (k *KeyedLimiter) cleanUp() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		k.mu.Lock()
		count := 0
		for key, limiter := range k.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(k.limits, key)
				count++
			}
		}
		remaining := len(k.limits)
		k.mu.Unlock()

		logx.Info("Rate limiter cleanup finished.", "removed", count, "remaining", remaining)
	}
}

// Middleware returns an HTTP middleware that rate limits requests by client IP.
// Requests over the limit receive a 429 Too Many Requests response.
func (k *KeyedLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !k.Allow(ip) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
