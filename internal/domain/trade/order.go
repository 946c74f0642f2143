package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The forward path moves one step at a time; cancellation is allowed from any non-terminal status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusProcessing
	case OrderStatusProcessing:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	}
	return false
}

// PaymentStatus tracks payment independently from fulfilment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking:
		return true
	}
	return false
}

// LineItem is a snapshot of a variant taken when the order is placed.
// Later catalog edits never change it.
type LineItem struct {
	ProductID   uuid.UUID
	VariantID   uuid.UUID
	ProductName string
	Description string
	Image       string
	Size        string
	Color       string
	Price       decimal.Decimal
	Quantity    int
	Amount      decimal.Decimal // Price * Quantity
}

// NewLineItem freezes the display fields of product and the current price of variant
func NewLineItem(product *catalog.Product, variant *catalog.Variant, quantity int) (LineItem, error) {
	if product == nil || variant == nil {
		return LineItem{}, shared.NewDomainError("INVALID_ITEM", "Product and variant are required")
	}
	if variant.ProductID != product.ID {
		return LineItem{}, shared.NewDomainError("INVALID_ITEM", "Variant does not belong to product")
	}
	if quantity < 1 {
		return LineItem{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if variant.Price.IsNegative() {
		return LineItem{}, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return LineItem{
		ProductID:   product.ID,
		VariantID:   variant.ID,
		ProductName: product.Name,
		Description: product.Description,
		Image:       product.PrimaryImage(variant.Color),
		Size:        variant.Size.String(),
		Color:       variant.Color,
		Price:       variant.Price,
		Quantity:    quantity,
		Amount:      variant.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// OrderDraft carries everything needed to place an order
type OrderDraft struct {
	OrderNumber     string
	CustomerID      uuid.UUID
	CustomerName    string
	Items           []LineItem
	CouponCode      string
	DiscountAmount  decimal.Decimal
	ShippingAddress valueobject.Address
	PaymentMethod   PaymentMethod
}

// Order is a customer's purchase. Items and totals are immutable after creation.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	CustomerID      uuid.UUID
	CustomerName    string
	Items           []LineItem
	TotalMRP        decimal.Decimal
	DiscountAmount  decimal.Decimal
	FinalAmount     decimal.Decimal // TotalMRP - DiscountAmount
	CouponCode      string
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod
	TrackingID      string
	ShippingAddress valueobject.Address
	ConfirmedAt     *time.Time
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
}

// NewOrder places a pending order from draft
func NewOrder(draft OrderDraft) (*Order, error) {
	if strings.TrimSpace(draft.OrderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if draft.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(draft.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = PaymentMethodCOD
	}
	if !draft.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be one of cod, card, upi, netbanking")
	}

	total := TotalMRP(draft.Items)
	if draft.DiscountAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	if draft.DiscountAmount.GreaterThan(total) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot exceed total MRP")
	}

	items := make([]LineItem, len(draft.Items))
	copy(items, draft.Items)

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       draft.OrderNumber,
		CustomerID:        draft.CustomerID,
		CustomerName:      draft.CustomerName,
		Items:             items,
		TotalMRP:          total,
		DiscountAmount:    draft.DiscountAmount,
		FinalAmount:       total.Sub(draft.DiscountAmount),
		CouponCode:        draft.CouponCode,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		PaymentMethod:     draft.PaymentMethod,
		ShippingAddress:   draft.ShippingAddress,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// TotalMRP sums price * quantity over items
func TotalMRP(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// UpdateStatus moves the order along the status graph.
// trackingID is recorded when moving to shipped and ignored otherwise.
func (o *Order) UpdateStatus(target OrderStatus, trackingID string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == OrderStatusCancelled {
		return o.Cancel("")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	now := time.Now()
	from := o.Status
	switch target {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusProcessing:
		o.ProcessingAt = &now
	case OrderStatusShipped:
		o.ShippedAt = &now
		if trackingID = strings.TrimSpace(trackingID); trackingID != "" {
			o.TrackingID = trackingID
		}
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	}
	o.Status = target
	o.touch(now)

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// Cancel cancels the order. Stock is restored by the caller in the same transaction.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if len(reason) > 500 {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot exceed 500 characters")
	}

	now := time.Now()
	from := o.Status
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = strings.TrimSpace(reason)
	o.touch(now)

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// SetPaymentStatus records a payment status change
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Payment status must be one of pending, completed, failed, refunded")
	}
	if o.PaymentStatus == status {
		return nil
	}
	from := o.PaymentStatus
	o.PaymentStatus = status
	o.touch(time.Now())

	o.AddDomainEvent(NewOrderPaymentStatusChangedEvent(o, from))
	return nil
}

// SetTracking sets the courier tracking id
func (o *Order) SetTracking(trackingID string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot set tracking on order in %s status", o.Status))
	}
	o.TrackingID = strings.TrimSpace(trackingID)
	o.touch(time.Now())
	return nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the number of units across all line items
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsCancelled reports whether the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// CanBePackaged reports whether the order may be grouped into a package
func (o *Order) CanBePackaged() bool {
	return o.Status == OrderStatusConfirmed || o.Status == OrderStatusProcessing
}

func (o *Order) touch(at time.Time) {
	o.Touch(at)
}
