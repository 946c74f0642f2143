package telemetry

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"go.opentelemetry.io/otel/metric"
)

// Ensure ShopMetrics implements shared.EventHandler
var _ shared.EventHandler = (*ShopMetrics)(nil)

// ShopMetrics turns order and package events into business metrics.
// Subscribe it to the event bus; it never fails a publish.
type ShopMetrics struct {
	ordersCreated     *Counter
	orderRevenue      *Amount
	cancelledRevenue  *Amount
	orderDiscount     *Amount
	orderItems        *Histogram
	couponRedemptions *Counter
	statusTransitions *Counter
	paymentChanges    *Counter
	packagesCreated   *Counter
	packageChanges    *Counter
}

// NewShopMetrics creates the business instruments on meter.
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	in := NewInstruments(meter)
	m := &ShopMetrics{
		ordersCreated:     in.Counter("shop_orders_created_total", "Orders placed", "{order}"),
		orderRevenue:      in.Amount("shop_order_revenue_total", "Final amount of placed orders", "{currency}"),
		cancelledRevenue:  in.Amount("shop_order_cancelled_revenue_total", "Final amount of cancelled orders", "{currency}"),
		orderDiscount:     in.Amount("shop_order_discount_total", "Discount granted on placed orders", "{currency}"),
		orderItems:        in.Histogram("shop_order_items", "Line items per order", "{item}", 1, 2, 3, 5, 8, 13, 21),
		couponRedemptions: in.Counter("shop_coupon_redemptions_total", "Orders placed with a coupon", "{order}"),
		statusTransitions: in.Counter("shop_order_status_transitions_total", "Order status transitions", "{transition}"),
		paymentChanges:    in.Counter("shop_order_payment_status_total", "Order payment status changes", "{change}"),
		packagesCreated:   in.Counter("shop_packages_created_total", "Packages created", "{package}"),
		packageChanges:    in.Counter("shop_package_status_total", "Package status changes", "{change}"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes returns the event types this handler is interested in
func (m *ShopMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderCreated,
		trade.EventTypeOrderStatusChanged,
		trade.EventTypeOrderPaymentStatusChanged,
		trade.EventTypePackageCreated,
		trade.EventTypePackageStatusChanged,
	}
}

// Handle records the event
func (m *ShopMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		m.ordersCreated.Inc(ctx)
		m.orderRevenue.Add(ctx, e.FinalAmount.InexactFloat64())
		m.orderDiscount.Add(ctx, e.DiscountAmount.InexactFloat64())
		m.orderItems.Record(ctx, float64(e.ItemCount))
		if e.CouponCode != "" {
			m.couponRedemptions.Inc(ctx, AttrCoupon.String(e.CouponCode))
		}
	case *trade.OrderStatusChangedEvent:
		m.statusTransitions.Inc(ctx,
			AttrStatusFrom.String(string(e.From)),
			AttrOrderStatus.String(string(e.To)),
		)
		if e.To == trade.OrderStatusCancelled {
			m.cancelledRevenue.Add(ctx, e.FinalAmount.InexactFloat64())
		}
	case *trade.OrderPaymentStatusChangedEvent:
		m.paymentChanges.Inc(ctx, AttrPaymentStatus.String(string(e.To)))
	case *trade.PackageCreatedEvent:
		m.packagesCreated.Inc(ctx)
	case *trade.PackageStatusChangedEvent:
		m.packageChanges.Inc(ctx, AttrPackageStatus.String(string(e.To)))
	}
	return nil
}
