// Package cache stores hot API responses in the shared Redis instance.
// Cache failures are soft; callers always fall back to the database.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const ratesKey = "cache:rates:latest"

// RedisRateCache implements ports.RateCache using Redis.
type RedisRateCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisRateCache creates a new RedisRateCache.
func NewRedisRateCache(client *redis.Client, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{client: client, logger: logger}
}

// GetRates returns the cached all-rates payload when present and decodable.
func (c *RedisRateCache) GetRates(ctx context.Context) ([]domain.CurrentRate, bool) {
	raw, err := c.client.Get(ctx, ratesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Rate cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var rates []domain.CurrentRate
	if err := json.Unmarshal(raw, &rates); err != nil {
		c.logger.Warn("Rate cache payload corrupt, dropping", slog.String("error", err.Error()))
		c.Invalidate(ctx)
		return nil, false
	}
	return rates, true
}

// SetRates stores the all-rates payload with the given TTL.
func (c *RedisRateCache) SetRates(ctx context.Context, rates []domain.CurrentRate, ttl time.Duration) {
	raw, err := json.Marshal(rates)
	if err != nil {
		c.logger.Warn("Rate cache marshal failed", slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, ratesKey, raw, ttl).Err(); err != nil {
		c.logger.Warn("Rate cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the cached payload.
func (c *RedisRateCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, ratesKey).Err(); err != nil {
		c.logger.Warn("Rate cache invalidation failed", slog.String("error", err.Error()))
	}
}

var _ ports.RateCache = (*RedisRateCache)(nil)
