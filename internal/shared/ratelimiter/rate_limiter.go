// Package ratelimiter provides a fixed-window rate limiter for the bulk
// import endpoints.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window tracks the request count inside the current fixed window.
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter limits how many operations a key may perform per interval.
// Keys are typically client IPs; counts reset at the start of each interval.
type RateLimiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewRateLimiter creates a RateLimiter allowing limit operations per
// interval for each key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow reports whether the key may perform another operation in the current
// window and counts it when allowed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Middleware returns a gin middleware that rejects requests over the limit
// with 429 Too Many Requests, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
