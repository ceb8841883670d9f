package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// ExceededError matches ErrRateLimitExceeded with errors.Is.
type ExceededError struct {
	Key        string
	RetryAfter time.Duration
}

func (e *ExceededError) Error() string {
	if e.RetryAfter <= 0 {
		return fmt.Sprintf("rate limit exceeded for %s", e.Key)
	}
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.Key, e.RetryAfter)
}

func (e *ExceededError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// Limit allows at most Value hits per fixed Window.
type Limit struct {
	Value  uint16
	Window time.Duration
}

func PerHour(value uint16) Limit {
	return Limit{Value: value, Window: time.Hour}
}

func PerMinute(value uint16) Limit {
	return Limit{Value: value, Window: time.Minute}
}

type Result struct {
	IsAllowed bool
	// RetryAfter is zero when the hit was allowed or when the
	// limiter could not tell.
	RetryAfter time.Duration
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed(retryAfter time.Duration) Result {
	return Result{RetryAfter: retryAfter}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
