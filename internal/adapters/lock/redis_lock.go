// Package lock provides a best-effort distributed mutual-exclusion lease on
// top of the shared Redis store. The lease is advisory: a partition between
// an instance and Redis can in rare cases allow duplicate execution, which
// downstream idempotent writes absorb.
package lock

import (
	"context"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scheduler:lock:"

// releaseScript deletes the key only while holder still owns it. A plain
// GET-then-DEL would race with TTL expiry and a newer holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLockProvider implements ports.LockProvider on a Redis client.
type RedisLockProvider struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisLockProvider creates a new RedisLockProvider.
func NewRedisLockProvider(client *redis.Client, logger *slog.Logger) *RedisLockProvider {
	return &RedisLockProvider{client: client, logger: logger}
}

// TryAcquire attempts a single atomic set-if-absent with the TTL attached.
// It fails closed: when Redis is unreachable the job simply does not run
// this cycle.
func (p *RedisLockProvider) TryAcquire(ctx context.Context, key, holder string, ttl time.Duration) bool {
	ok, err := p.client.SetNX(ctx, keyPrefix+key, holder, ttl).Result()
	if err != nil {
		p.logger.Warn("Lock acquisition failed against the store",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return ok
}

// Release atomically deletes the key if and only if holder still owns it.
func (p *RedisLockProvider) Release(ctx context.Context, key, holder string) bool {
	deleted, err := releaseScript.Run(ctx, p.client, []string{keyPrefix + key}, holder).Int()
	if err != nil {
		p.logger.Warn("Lock release failed against the store",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if deleted == 0 {
		// Lease expired and may have been re-acquired; nothing to release.
		p.logger.Debug("Lock no longer held at release", slog.String("key", key))
		return false
	}
	return true
}

var _ ports.LockProvider = (*RedisLockProvider)(nil)
