package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/pkg/errors"
)

// RateLimiter implements a fixed-window in-memory rate limiter keyed by
// authenticated user and by client IP.
type RateLimiter struct {
	userLimits map[uint]*windowCount
	ipLimits   map[string]*windowCount
	mu         sync.RWMutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type windowCount struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup loop.
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*windowCount),
		ipLimits:        make(map[string]*windowCount),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
		now:             time.Now,
		stop:            make(chan struct{}),
	}

	go rl.cleanup(5 * time.Minute)

	return rl
}

// CheckUserLimit records a request for userID and reports whether it is allowed.
func (rl *RateLimiter) CheckUserLimit(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return hit(rl.userLimits, userID, rl.userMaxRequests, rl.now(), rl.window)
}

// CheckIPLimit records a request for ip and reports whether it is allowed.
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return hit(rl.ipLimits, ip, rl.ipMaxRequests, rl.now(), rl.window)
}

func hit[K comparable](limits map[K]*windowCount, key K, max int, now time.Time, window time.Duration) bool {
	limit, exists := limits[key]
	if !exists || now.After(limit.resetTime) {
		limits[key] = &windowCount{requests: 1, resetTime: now.Add(window)}
		return true
	}

	if limit.requests >= max {
		return false
	}

	limit.requests++
	return true
}

// GetUserRemaining returns remaining requests for user
func (rl *RateLimiter) GetUserRemaining(userID uint) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.userLimits[userID], rl.userMaxRequests, rl.now())
}

// GetIPRemaining returns remaining requests for IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return remaining(rl.ipLimits[ip], rl.ipMaxRequests, rl.now())
}

func remaining(limit *windowCount, max int, now time.Time) int {
	if limit == nil || now.After(limit.resetTime) {
		return max
	}
	if left := max - limit.requests; left > 0 {
		return left
	}
	return 0
}

// IPMiddleware limits every request by client IP.
func (rl *RateLimiter) IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.CheckIPLimit(ip) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			Abort(c, errors.New(errors.ErrCodeRateLimitExceeded, "Too many requests, please slow down."))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.GetIPRemaining(ip)))
		c.Next()
	}
}

// UserMiddleware limits authenticated requests per user. It must run after
// AuthMiddleware, and its X-RateLimit-Remaining replaces the per-IP value.
func (rl *RateLimiter) UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.Next()
			return
		}

		if !rl.CheckUserLimit(userID) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			Abort(c, errors.New(errors.ErrCodeRateLimitExceeded, "Too many requests, please slow down."))
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.GetUserRemaining(userID)))
		c.Next()
	}
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.purge()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) purge() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.userLimits {
		if now.After(limit.resetTime) {
			delete(rl.userLimits, userID)
		}
	}
	for ip, limit := range rl.ipLimits {
		if now.After(limit.resetTime) {
			delete(rl.ipLimits, ip)
		}
	}
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[uint]*windowCount)
	rl.ipLimits = make(map[string]*windowCount)
}
