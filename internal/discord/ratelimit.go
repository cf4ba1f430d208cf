package discord

import (
	"sync"

	"golang.org/x/time/rate"
)

// userLimiter throttles interactions per user: a small burst, then one
// command every two seconds. Limiters for quiet users are created lazily and
// kept for the session's lifetime.
type userLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newUserLimiter() *userLimiter {
	return &userLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (u *userLimiter) Allow(userID string) bool {
	u.mu.Lock()
	lim, ok := u.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(0.5), 3)
		u.limiters[userID] = lim
	}
	u.mu.Unlock()

	return lim.Allow()
}
