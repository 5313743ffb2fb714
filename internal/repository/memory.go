package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter is a per-process token bucket per key: limit tokens refilled over window.
type MemoryRateLimiter struct {
	limiters sync.Map
	every    rate.Limit
	burst    int
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &MemoryRateLimiter{
		every: rate.Every(window / time.Duration(limit)),
		burst: limit,
	}
}

func (r *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	val, _ := r.limiters.LoadOrStore(key, rate.NewLimiter(r.every, r.burst))
	return val.(*rate.Limiter).Allow(), nil
}
