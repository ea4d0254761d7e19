package middleware

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vietanh2810/hackathon-api/internal/api/handler/v1/response"
)

const (
	limiterIdleTTL  = 10 * time.Minute
	limiterSweepGap = 5 * time.Minute
)

var errRateLimited = errors.New("too many requests, slow down")

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per authenticated user.
type UserRateLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*limiterEntry
	rate     rate.Limit
	burst    int
	sweepAt  time.Time
	now      func() time.Time
}

func NewUserRateLimiter(perSecond float64, burst int) *UserRateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &UserRateLimiter{
		limiters: make(map[uint]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		sweepAt:  time.Now().Add(limiterSweepGap),
		now:      time.Now,
	}
}

func (l *UserRateLimiter) Allow(userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.sweepAt) {
		l.sweep(now)
		l.sweepAt = now.Add(limiterSweepGap)
	}

	entry, ok := l.limiters[userID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[userID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// must hold mu
func (l *UserRateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-limiterIdleTTL)
	for id, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, id)
		}
	}
}

func (l *UserRateLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}

// Limit must run after VerifyJWT. Requests without a user id pass through.
func (l *UserRateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, _ := ctx.Get(ContextKeyUserID)
		userID, _ := value.(uint)
		if userID != 0 && !l.Allow(userID) {
			response.RenderErr(ctx, response.ErrTooManyRequests(errRateLimited))
			return
		}

		ctx.Next()
	}
}
