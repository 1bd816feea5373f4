package guard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"conveymed-analytics/internal/export/core/ports"
)

const keyPrefix = "conveymed:export:"

// releaseScript deletes the lock only if it still carries our token, so a
// lock that expired and was taken by another export is left alone.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`

// Client is the subset of *redis.Client the guard needs.
type Client interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisGuard shares export locks across replicas. Locks expire after ttl
// so a crashed export cannot block its viewer forever.
type RedisGuard struct {
	rdb Client
	ttl time.Duration
}

func NewRedisGuard(rdb Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

var _ ports.ExportGuard = (*RedisGuard)(nil)

func (g *RedisGuard) Acquire(ctx context.Context, key, token string) (bool, error) {
	return g.rdb.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	return g.rdb.Eval(ctx, releaseScript, []string{keyPrefix + key}, token).Err()
}

func (g *RedisGuard) Active(ctx context.Context, key string) (bool, error) {
	n, err := g.rdb.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
