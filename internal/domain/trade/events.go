package trade

import (
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder   = "Order"
	AggregateTypePackage = "Package"
)

// Event type constants
const (
	EventTypeOrderCreated              = "OrderCreated"
	EventTypeOrderStatusChanged        = "OrderStatusChanged"
	EventTypeOrderPaymentStatusChanged = "OrderPaymentStatusChanged"
	EventTypePackageCreated            = "PackageCreated"
	EventTypePackageStatusChanged      = "PackageStatusChanged"
)

// OrderCreatedEvent is raised when an order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	ItemCount      int             `json:"item_count"`
	TotalMRP       decimal.Decimal `json:"total_mrp"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	CouponCode     string          `json:"coupon_code,omitempty"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		ItemCount:       len(o.Items),
		TotalMRP:        o.TotalMRP,
		DiscountAmount:  o.DiscountAmount,
		FinalAmount:     o.FinalAmount,
		CouponCode:      o.CouponCode,
	}
}

// OrderStatusChangedEvent is raised on every status transition, including cancellation
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	From        OrderStatus     `json:"from"`
	To          OrderStatus     `json:"to"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Reason      string          `json:"reason,omitempty"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.Status,
		FinalAmount:     o.FinalAmount,
		Reason:          o.CancelReason,
	}
}

// OrderPaymentStatusChangedEvent is raised when the payment status changes
type OrderPaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	From        PaymentStatus `json:"from"`
	To          PaymentStatus `json:"to"`
}

// NewOrderPaymentStatusChangedEvent creates a new OrderPaymentStatusChangedEvent
func NewOrderPaymentStatusChangedEvent(o *Order, from PaymentStatus) *OrderPaymentStatusChangedEvent {
	return &OrderPaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.PaymentStatus,
	}
}

// PackageCreatedEvent is raised when orders are packed
type PackageCreatedEvent struct {
	shared.BaseDomainEvent
	PackageID     uuid.UUID   `json:"package_id"`
	PackageNumber string      `json:"package_number"`
	OrderIDs      []uuid.UUID `json:"order_ids"`
}

// NewPackageCreatedEvent creates a new PackageCreatedEvent
func NewPackageCreatedEvent(p *Package) *PackageCreatedEvent {
	return &PackageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePackageCreated, AggregateTypePackage, p.ID),
		PackageID:       p.ID,
		PackageNumber:   p.PackageNumber,
		OrderIDs:        p.OrderIDs,
	}
}

// PackageStatusChangedEvent is raised when a package moves along its route
type PackageStatusChangedEvent struct {
	shared.BaseDomainEvent
	PackageID     uuid.UUID     `json:"package_id"`
	PackageNumber string        `json:"package_number"`
	From          PackageStatus `json:"from"`
	To            PackageStatus `json:"to"`
	TrackingID    string        `json:"tracking_id,omitempty"`
}

// NewPackageStatusChangedEvent creates a new PackageStatusChangedEvent
func NewPackageStatusChangedEvent(p *Package, from PackageStatus) *PackageStatusChangedEvent {
	return &PackageStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePackageStatusChanged, AggregateTypePackage, p.ID),
		PackageID:       p.ID,
		PackageNumber:   p.PackageNumber,
		From:            from,
		To:              p.Status,
		TrackingID:      p.TrackingID,
	}
}
