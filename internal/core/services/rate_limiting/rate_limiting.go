package ratelimiting

import (
	"context"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/logging"
	ratelimiter "dashboard/internal/core/domain/rate_limiter"
	"dashboard/internal/core/services"
)

// Keyed inputs name the bucket their hits are counted in.
type Keyed interface {
	RateLimitKey() string
}

type limited[T Keyed, S any] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	limit       ratelimiter.Limit
	inner       services.Service[T, S]
}

// WithRateLimiting rejects inputs over limit with *ratelimiter.ExceededError
// before they reach inner.
func WithRateLimiting[T Keyed, S any](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	limit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if limit.Window <= 0 {
		panic(e.NewInvalidStateErrorf("rate limit window must be positive, got %s", limit.Window))
	}
	return &limited[T, S]{
		log:         log,
		rateLimiter: rateLimiter,
		limit:       limit,
		inner:       inner,
	}
}

func (s *limited[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	key := input.RateLimitKey()
	checked := s.rateLimiter.CheckLimit(ctx, key, s.limit)
	if !checked.IsAllowed {
		s.log.Warning(
			ctx,
			"Rate limit exceeded.",
			logging.Entry("rateLimitKey", key),
			logging.Entry("retryAfter", checked.RetryAfter),
		)
		return result, &ratelimiter.ExceededError{Key: key, RetryAfter: checked.RetryAfter}
	}
	return s.inner.Run(ctx, input)
}
