package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"go.uber.org/zap"
)

// Cache key prefix shared by every dashboard entry
const cacheKeyPrefix = "dashboard:"

const overviewKey = cacheKeyPrefix + "overview"

func statsKey(p report.Period) string { return cacheKeyPrefix + "stats:" + string(p) }

func topKey(limit int) string { return fmt.Sprintf("%stop:%d", cacheKeyPrefix, limit) }

// DefaultCacheTTL is used when the service is created without a TTL
const DefaultCacheTTL = 60 * time.Second

// DashboardCache stores computed dashboard read models.
// Get reports whether key was found and decodes it into dest.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// DashboardService serves the owner dashboard, caching each read model for a short TTL
type DashboardService struct {
	repo   report.DashboardRepository
	cache  DashboardCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(repo report.DashboardRepository, cache DashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// OrderStats returns the status breakdown, daily series and totals for a period
func (s *DashboardService) OrderStats(ctx context.Context, periodName string) (*report.OrderStats, error) {
	period, err := report.ParsePeriod(periodName)
	if err != nil {
		return nil, err
	}

	var stats report.OrderStats
	if s.lookup(ctx, statsKey(period), &stats) {
		return &stats, nil
	}
	return s.refreshOrderStats(ctx, period)
}

// RefreshOrderStats recomputes the statistics of a period and overwrites the cached copy
func (s *DashboardService) RefreshOrderStats(ctx context.Context, periodName string) (*report.OrderStats, error) {
	period, err := report.ParsePeriod(periodName)
	if err != nil {
		return nil, err
	}
	return s.refreshOrderStats(ctx, period)
}

func (s *DashboardService) refreshOrderStats(ctx context.Context, period report.Period) (*report.OrderStats, error) {
	now := s.now()
	since := period.Since(now)

	byStatus, err := s.repo.OrdersByStatus(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	daily, err := s.repo.DailyOrders(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("daily orders: %w", err)
	}
	totals, err := s.repo.Totals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("order totals: %w", err)
	}
	if byStatus == nil {
		byStatus = []report.StatusBreakdown{}
	}
	if daily == nil {
		daily = []report.DailyOrders{}
	}

	stats := report.OrderStats{
		Period:         period,
		OrdersByStatus: byStatus,
		DailyOrders:    daily,
		Totals:         totals,
		GeneratedAt:    now,
	}
	if !since.IsZero() {
		stats.Since = &since
	}

	s.store(ctx, statsKey(period), stats)
	return &stats, nil
}

// TopProducts returns the best sellers by quantity, ranked from 1
func (s *DashboardService) TopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	limit = report.ClampTopProductsLimit(limit)

	var products []report.TopProduct
	if s.lookup(ctx, topKey(limit), &products) {
		return products, nil
	}
	return s.refreshTopProducts(ctx, limit)
}

// RefreshTopProducts recomputes the best sellers and overwrites the cached copy
func (s *DashboardService) RefreshTopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	return s.refreshTopProducts(ctx, report.ClampTopProductsLimit(limit))
}

func (s *DashboardService) refreshTopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	products, err := s.repo.TopProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	if products == nil {
		products = []report.TopProduct{}
	}
	for i := range products {
		products[i].Rank = i + 1
	}

	s.store(ctx, topKey(limit), products)
	return products, nil
}

// Overview returns the headline counts of the catalog and directory
func (s *DashboardService) Overview(ctx context.Context) (*report.Overview, error) {
	var overview report.Overview
	if s.lookup(ctx, overviewKey, &overview) {
		return &overview, nil
	}
	return s.RefreshOverview(ctx)
}

// RefreshOverview recomputes the headline counts and overwrites the cached copy
func (s *DashboardService) RefreshOverview(ctx context.Context) (*report.Overview, error) {
	overview, err := s.repo.Overview(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	s.store(ctx, overviewKey, overview)
	return &overview, nil
}

// Invalidate drops every cached dashboard entry
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPrefix(ctx, cacheKeyPrefix)
}

// lookup reads key from the cache. Cache failures are logged and treated as misses.
func (s *DashboardService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

func (s *DashboardService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
