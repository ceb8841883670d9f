package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	IsAllowed bool
	Keys      []string
	Limits    []Limit
	lock      sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	defer rl.lock.Unlock()

	rl.Keys = append(rl.Keys, key)
	rl.Limits = append(rl.Limits, limit)
	if rl.IsAllowed {
		return Allowed()
	}
	return NotAllowed(limit.Window)
}
