package promotion

import (
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeCoupon   = "Coupon"
	AggregateTypeDiscount = "Discount"
)

// Event type constants
const (
	EventTypeCouponCreated   = "CouponCreated"
	EventTypeCouponRedeemed  = "CouponRedeemed"
	EventTypeDiscountCreated = "DiscountCreated"
)

// CouponCreatedEvent is published when a coupon is created
type CouponCreatedEvent struct {
	shared.BaseDomainEvent
	CouponID uuid.UUID `json:"coupon_id"`
	Code     string    `json:"code"`
}

// NewCouponCreatedEvent creates a new CouponCreatedEvent
func NewCouponCreatedEvent(c *Coupon) *CouponCreatedEvent {
	return &CouponCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponCreated, AggregateTypeCoupon, c.ID),
		CouponID:        c.ID,
		Code:            c.Code,
	}
}

// CouponRedeemedEvent is published when an order consumes a coupon use
type CouponRedeemedEvent struct {
	shared.BaseDomainEvent
	CouponID   uuid.UUID `json:"coupon_id"`
	Code       string    `json:"code"`
	CustomerID uuid.UUID `json:"customer_id"`
	OrderID    uuid.UUID `json:"order_id"`
}

// NewCouponRedeemedEvent creates a new CouponRedeemedEvent
func NewCouponRedeemedEvent(c *Coupon, usage CouponUsage) *CouponRedeemedEvent {
	return &CouponRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCouponRedeemed, AggregateTypeCoupon, c.ID),
		CouponID:        c.ID,
		Code:            c.Code,
		CustomerID:      usage.CustomerID,
		OrderID:         usage.OrderID,
	}
}

// DiscountCreatedEvent is published when a discount is created
type DiscountCreatedEvent struct {
	shared.BaseDomainEvent
	DiscountID uuid.UUID       `json:"discount_id"`
	Percent    decimal.Decimal `json:"percent"`
}

// NewDiscountCreatedEvent creates a new DiscountCreatedEvent
func NewDiscountCreatedEvent(d *Discount) *DiscountCreatedEvent {
	return &DiscountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDiscountCreated, AggregateTypeDiscount, d.ID),
		DiscountID:      d.ID,
		Percent:         d.Percent,
	}
}
