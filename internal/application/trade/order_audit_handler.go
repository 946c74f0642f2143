package trade

import (
	"context"
	"fmt"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderAuditHandler writes an audit log line for every order and package change
type OrderAuditHandler struct {
	logger *zap.Logger
}

// NewOrderAuditHandler creates a new OrderAuditHandler
func NewOrderAuditHandler(logger *zap.Logger) *OrderAuditHandler {
	return &OrderAuditHandler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderAuditHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderStatusChanged,
		trade.EventTypeOrderPaymentStatusChanged,
		trade.EventTypePackageCreated,
		trade.EventTypePackageStatusChanged,
	}
}

// Handle logs the event with its business fields
func (h *OrderAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("customer_id", e.CustomerID.String()),
			zap.Int("item_count", e.ItemCount),
			zap.String("total_mrp", e.TotalMRP.StringFixed(2)),
			zap.String("discount_amount", e.DiscountAmount.StringFixed(2)),
			zap.String("final_amount", e.FinalAmount.StringFixed(2)),
			zap.String("coupon_code", e.CouponCode),
		)
	case *trade.OrderStatusChangedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("from", e.From.String()),
			zap.String("to", e.To.String()),
		)
		if e.Reason != "" {
			fields = append(fields, zap.String("reason", e.Reason))
		}
	case *trade.OrderPaymentStatusChangedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("from", string(e.From)),
			zap.String("to", string(e.To)),
		)
	case *trade.PackageCreatedEvent:
		fields = append(fields,
			zap.String("package_number", e.PackageNumber),
			zap.Int("order_count", len(e.OrderIDs)),
		)
	case *trade.PackageStatusChangedEvent:
		fields = append(fields,
			zap.String("package_number", e.PackageNumber),
			zap.String("from", e.From.String()),
			zap.String("to", e.To.String()),
			zap.String("tracking_id", e.TrackingID),
		)
	default:
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	h.logger.Info("order audit", fields...)
	return nil
}
