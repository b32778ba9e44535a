// Package ratelimiter throttles repeated attempts from the same client.
package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"news_backend/internal/platform/http/response"
)

// window counts the attempts of one key since lastReset.
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter allows at most limit attempts per key in each interval.
// Windows are fixed: the count resets once interval has passed since the
// first attempt of the window.
type RateLimiter struct {
	limit    int
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter returns a limiter allowing limit attempts per interval and key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow records an attempt for key. When the limit is exceeded it returns
// false and how long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.sweep(now)
		rl.windows[key] = &window{count: 1, lastReset: now}
		return true, 0
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	return true, 0
}

// sweep drops windows that have expired so the map does not grow without bound.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware answers 429 once a client IP exceeds the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retry := rl.Allow(c.ClientIP())
		if !ok {
			secs := int(math.Ceil(retry.Seconds()))
			slog.Warn("rate limit hit", "remote_addr", c.ClientIP(), "path", c.FullPath(), "retry_after", secs)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
