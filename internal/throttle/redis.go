package throttle

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/nano-forum/backend/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "throttle:"

// Redis shares the cooldown across service replicas. The key for a session
// is created with SET NX and expires after the cooldown, so its presence
// means the session acted recently.
type Redis struct {
	client   redis.Cmdable
	cooldown time.Duration
}

// NewRedis creates a Redis-backed throttle
func NewRedis(client redis.Cmdable, cooldown time.Duration) *Redis {
	return &Redis{client: client, cooldown: cooldown}
}

// Allow fails open: when Redis is unreachable the action is allowed and the
// error is logged.
func (r *Redis) Allow(ctx context.Context, key string) error {
	k := redisKeyPrefix + key
	ok, err := r.client.SetNX(ctx, k, time.Now().UnixMilli(), r.cooldown).Result()
	if err != nil {
		slog.Warn("Throttle check failed, allowing action", "key", key, "error", err)
		return nil
	}
	if ok {
		return nil
	}

	remaining, err := r.client.PTTL(ctx, k).Result()
	if err != nil || remaining <= 0 {
		remaining = r.cooldown
	}
	metrics.ThrottleRejections.Inc()
	return &ThrottledError{Remaining: remaining}
}

// Reset deletes the cooldown key. Errors are logged; the key expires anyway.
func (r *Redis) Reset(ctx context.Context, key string) {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		slog.Warn("Throttle reset failed", "key", key, "error", err)
	}
}
