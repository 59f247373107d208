package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter hands out one token bucket per user
type RateLimiter struct {
	limiters  map[uuid.UUID]*limiterEntry
	mu        sync.Mutex
	perMinute int
	rateLimit rate.Limit
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requestsPerMinute with bursts of burstSize per user
func NewRateLimiter(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:  make(map[uuid.UUID]*limiterEntry),
		perMinute: requestsPerMinute,
		rateLimit: rate.Limit(float64(requestsPerMinute) / 60.0),
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

func (r *RateLimiter) entry(userID uuid.UUID) *limiterEntry {
	e, ok := r.limiters[userID]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(r.rateLimit, r.burstSize)}
		r.limiters[userID] = e
	}
	e.lastSeen = time.Now()
	return e
}

// Allow consumes one token for userID
func (r *RateLimiter) Allow(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entry(userID).limiter.Allow()
}

// State returns the remaining tokens and the time the bucket is full again
func (r *RateLimiter) State(userID uuid.UUID) (remaining int, resetTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.limiters[userID]
	if !ok {
		return r.burstSize, time.Now()
	}

	remaining = int(e.limiter.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	missing := float64(r.burstSize - remaining)
	return remaining, time.Now().Add(time.Duration(missing / float64(r.rateLimit) * float64(time.Second)))
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for userID, e := range r.limiters {
				if now.Sub(e.lastSeen) > LimiterTTL {
					delete(r.limiters, userID)
					log.Debug().Str("user_id", userID.String()).Msg("Cleaned up stale rate limiter")
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

// RateLimitMiddleware limits requests per authenticated user. Requests without a
// resolved user pass through; Authenticate must run first.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == uuid.Nil {
				return next(c)
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.perMinute))

			if !rl.Allow(userID) {
				_, resetTime := rl.State(userID)
				retryAfter := int(time.Until(resetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				header.Set("X-RateLimit-Remaining", "0")
				header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))
				header.Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				log.Warn().
					Str("user_id", userID.String()).
					Str("path", c.Request().URL.Path).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return tooManyRequestsError(c, retryAfter)
			}

			remaining, resetTime := rl.State(userID)
			header.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			header.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

			return next(c)
		}
	}
}
