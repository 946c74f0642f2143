package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/application/report"
)

// InMemoryDashboardCache keeps dashboard views in process memory. Values are
// stored as JSON so reads decode exactly like the Redis cache.
type InMemoryDashboardCache struct {
	views *ttlMap[[]byte]
}

func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	return &InMemoryDashboardCache{views: newTTLMap[[]byte]()}
}

func (c *InMemoryDashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, ok := c.views.get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for ttl. Expired views are swept on every write.
func (c *InMemoryDashboardCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	c.views.set(key, data, ttl)
	c.views.purge()
	return nil
}

func (c *InMemoryDashboardCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.views.deletePrefix(prefix)
	return nil
}

// Len returns the number of stored views, expired ones included
func (c *InMemoryDashboardCache) Len() int {
	return c.views.len()
}

var _ report.DashboardCache = (*InMemoryDashboardCache)(nil)
