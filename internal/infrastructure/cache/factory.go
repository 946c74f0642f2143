package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Charan2012-gif/Shopping-App/internal/application/report"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/auth"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory builds the dashboard cache, idempotency store and token blacklist.
// All share one Redis client when Redis is enabled and reachable.
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool

	once      sync.Once
	client    *redis.Client
	clientErr error
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// redisClient connects once and remembers the outcome
func (f *Factory) redisClient() (*redis.Client, error) {
	f.once.Do(func() {
		if !f.redisConfig.Enabled {
			f.clientErr = errors.New("redis is disabled")
			return
		}
		f.client, f.clientErr = NewRedisClient(f.redisConfig)
	})
	return f.client, f.clientErr
}

// fallback decides between an in-memory store and a hard failure
func (f *Factory) fallback(what string, err error) error {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory " + what)
		return nil
	}
	if !f.allowInMemoryFallback {
		return fmt.Errorf("redis required for %s but unavailable: %w", what, err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory "+what+". "+
		"State is not shared across instances.",
		zap.Error(err),
	)
	return nil
}

// CreateDashboardCache returns the Redis cache, or the in-memory one when Redis cannot be used
func (f *Factory) CreateDashboardCache() (report.DashboardCache, error) {
	client, err := f.redisClient()
	if err == nil {
		f.logger.Info("using Redis dashboard cache")
		return NewRedisDashboardCache(client, f.logger), nil
	}
	if err := f.fallback("dashboard cache", err); err != nil {
		return nil, err
	}
	return NewInMemoryDashboardCache(), nil
}

// CreateIdempotencyStore returns the Redis store, or the in-memory one when Redis cannot be used
func (f *Factory) CreateIdempotencyStore() (IdempotencyStore, error) {
	client, err := f.redisClient()
	if err == nil {
		f.logger.Info("using Redis idempotency store")
		return NewRedisIdempotencyStore(client, ""), nil
	}
	if err := f.fallback("idempotency store", err); err != nil {
		return nil, err
	}
	return NewInMemoryIdempotencyStore(), nil
}

// CreateTokenBlacklist returns the Redis revocation list, or the in-memory one when Redis cannot be used
func (f *Factory) CreateTokenBlacklist() (auth.TokenBlacklist, error) {
	client, err := f.redisClient()
	if err == nil {
		f.logger.Info("using Redis token blacklist")
		return auth.NewRedisTokenBlacklist(client), nil
	}
	if err := f.fallback("token blacklist", err); err != nil {
		return nil, err
	}
	return auth.NewInMemoryTokenBlacklist(), nil
}

// Ping checks the shared Redis client. In-memory mode has nothing to check.
func (f *Factory) Ping(ctx context.Context) error {
	if f.client == nil {
		return nil
	}
	return f.client.Ping(ctx).Err()
}

// Close closes the shared Redis client, if one was opened
func (f *Factory) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
