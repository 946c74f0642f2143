package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/application/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultScanBatchSize = 100

// RedisDashboardCache implements DashboardCache using Redis
type RedisDashboardCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisDashboardCache creates a dashboard cache on an existing Redis client.
// The caller retains ownership of the client.
func NewRedisDashboardCache(client *redis.Client, logger *zap.Logger) *RedisDashboardCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDashboardCache{client: client, logger: logger}
}

// Get decodes the cached JSON value of key into dest
func (c *RedisDashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupted cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// Set stores value as JSON under key for ttl
func (c *RedisDashboardCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

// DeleteByPrefix removes every key starting with prefix, scanning in batches
func (c *RedisDashboardCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated cache keys", zap.String("prefix", prefix), zap.Int64("count", deleted))
	return nil
}

// Ensure RedisDashboardCache implements DashboardCache
var _ report.DashboardCache = (*RedisDashboardCache)(nil)
