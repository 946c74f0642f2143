package report

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"go.uber.org/zap"
)

// CacheInvalidationHandler clears the dashboard cache whenever an event
// changes one of the numbers it shows
type CacheInvalidationHandler struct {
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler
func NewCacheInvalidationHandler(dashboard *DashboardService, logger *zap.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderStatusChanged,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductDeleted,
		catalog.EventTypeCollectionCreated,
		catalog.EventTypeCollectionDeleted,
		partner.EventTypeCustomerCreated,
		partner.EventTypeCustomerStatusChanged,
		promotion.EventTypeDiscountCreated,
	}
}

// Handle drops the cached dashboard. Failures are logged; the entries expire on their own.
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.dashboard.Invalidate(ctx); err != nil {
		h.logger.Warn("failed to invalidate dashboard cache",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return nil
	}
	h.logger.Debug("dashboard cache invalidated", zap.String("event_type", event.EventType()))
	return nil
}
