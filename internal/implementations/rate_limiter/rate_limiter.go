package ratelimiter

import (
	"context"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/logging"
	ratelimiter "dashboard/internal/core/domain/rate_limiter"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

// CheckLimit counts hits in a fixed window aligned to limit.Window.
// Redis failures are logged and the hit is let through.
func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	now := r.now()
	windowStart := now.Truncate(limit.Window)
	k := fmt.Sprintf("rate_limit::%s::%d", key, windowStart.Unix())

	var hits *redis.IntCmd
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		hits = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, limit.Window)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed(0)
	}
	if err != nil {
		logging.Error(ctx, r.log, err, logging.Entry("rateLimitKey", key))
		return ratelimiter.Allowed()
	}
	if hits.Val() > int64(limit.Value) {
		return ratelimiter.NotAllowed(windowStart.Add(limit.Window).Sub(now))
	}
	return ratelimiter.Allowed()
}
