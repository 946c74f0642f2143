package trade

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested (variant, quantity) pair
type OrderItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=100"`
}

// CreateOrderRequest represents a request to place an order.
// CustomerID is honoured for owners only; customers always order for themselves.
type CreateOrderRequest struct {
	CustomerID      *uuid.UUID              `json:"customer_id"`
	Items           []OrderItemRequest      `json:"items" binding:"required,min=1,max=50,dive"`
	CouponCode      string                  `json:"coupon_code" binding:"omitempty,max=20"`
	ShippingAddress *valueobject.AddressDTO `json:"shipping_address"`
	PaymentMethod   string                  `json:"payment_method" binding:"omitempty,oneof=cod card upi netbanking"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
	TrackingID string `json:"tracking_id" binding:"max=100"`
	Reason     string `json:"reason" binding:"max=500"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UpdatePaymentStatusRequest records a payment status change
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending completed failed refunded"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=pending completed failed refunded"`
	CustomerID    *uuid.UUID `form:"-"` // parsed by the handler from customer_id
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemResponse is a frozen order line
type LineItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	OrderNumber     string                  `json:"order_number"`
	CustomerID      uuid.UUID               `json:"customer_id"`
	CustomerName    string                  `json:"customer_name"`
	Items           []LineItemResponse      `json:"items"`
	ItemCount       int                     `json:"item_count"`
	TotalQuantity   int                     `json:"total_quantity"`
	TotalMRP        decimal.Decimal         `json:"total_mrp"`
	DiscountAmount  decimal.Decimal         `json:"discount_amount"`
	FinalAmount     decimal.Decimal         `json:"final_amount"`
	CouponCode      string                  `json:"coupon_code,omitempty"`
	Status          string                  `json:"status"`
	PaymentStatus   string                  `json:"payment_status"`
	PaymentMethod   string                  `json:"payment_method"`
	TrackingID      string                  `json:"tracking_id,omitempty"`
	ShippingAddress *valueobject.AddressDTO `json:"shipping_address,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmed_at,omitempty"`
	ProcessingAt    *time.Time              `json:"processing_at,omitempty"`
	ShippedAt       *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time              `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason    string                  `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
	Version         int                     `json:"version"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]LineItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = LineItemResponse{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Description: item.Description,
			Image:       item.Image,
			Size:        item.Size,
			Color:       item.Color,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		}
	}

	resp := OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		Items:          items,
		ItemCount:      o.ItemCount(),
		TotalQuantity:  o.TotalQuantity(),
		TotalMRP:       o.TotalMRP,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		CouponCode:     o.CouponCode,
		Status:         o.Status.String(),
		PaymentStatus:  string(o.PaymentStatus),
		PaymentMethod:  string(o.PaymentMethod),
		TrackingID:     o.TrackingID,
		ConfirmedAt:    o.ConfirmedAt,
		ProcessingAt:   o.ProcessingAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Version:        o.Version,
	}
	if !o.ShippingAddress.IsEmpty() {
		addr := o.ShippingAddress.ToDTO()
		resp.ShippingAddress = &addr
	}
	return resp
}

// DimensionsDTO is the size of a package in centimetres
type DimensionsDTO struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// ShipmentDetailsRequest carries the editable courier details of a package
type ShipmentDetailsRequest struct {
	TrackingID        string          `json:"tracking_id" binding:"max=100"`
	CourierService    string          `json:"courier_service" binding:"max=100"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery"`
	Weight            decimal.Decimal `json:"weight"`
	Dimensions        DimensionsDTO   `json:"dimensions"`
}

func (r ShipmentDetailsRequest) details() trade.ShipmentDetails {
	return trade.ShipmentDetails{
		TrackingID:        r.TrackingID,
		CourierService:    r.CourierService,
		EstimatedDelivery: r.EstimatedDelivery,
		Weight:            r.Weight,
		Dimensions: trade.Dimensions{
			Length: r.Dimensions.Length,
			Width:  r.Dimensions.Width,
			Height: r.Dimensions.Height,
		},
	}
}

// CreatePackageRequest packs orders into a shipment
type CreatePackageRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1,max=100"`
	ShipmentDetailsRequest
}

// UpdatePackageStatusRequest moves a package along its route
type UpdatePackageStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=packed shipped in_transit delivered"`
	TrackingID string `json:"tracking_id" binding:"max=100"`
}

// PackageListFilter represents filter options for the package list
type PackageListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=packed shipped in_transit delivered"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// PackageOrderSummary is a compact view of an order inside a package
type PackageOrderSummary struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
}

// PackageResponse represents a package in API responses
type PackageResponse struct {
	ID                uuid.UUID             `json:"id"`
	PackageNumber     string                `json:"package_number"`
	OrderIDs          []uuid.UUID           `json:"order_ids"`
	Orders            []PackageOrderSummary `json:"orders,omitempty"`
	Status            string                `json:"status"`
	TrackingID        string                `json:"tracking_id,omitempty"`
	CourierService    string                `json:"courier_service,omitempty"`
	EstimatedDelivery *time.Time            `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time            `json:"actual_delivery,omitempty"`
	ShippedAt         *time.Time            `json:"shipped_at,omitempty"`
	Weight            decimal.Decimal       `json:"weight"`
	Dimensions        DimensionsDTO         `json:"dimensions"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// ToPackageResponse converts a domain Package to PackageResponse
func ToPackageResponse(p *trade.Package) PackageResponse {
	ids := p.OrderIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return PackageResponse{
		ID:                p.ID,
		PackageNumber:     p.PackageNumber,
		OrderIDs:          ids,
		Status:            p.Status.String(),
		TrackingID:        p.TrackingID,
		CourierService:    p.CourierService,
		EstimatedDelivery: p.EstimatedDelivery,
		ActualDelivery:    p.ActualDelivery,
		ShippedAt:         p.ShippedAt,
		Weight:            p.Weight,
		Dimensions: DimensionsDTO{
			Length: p.Dimensions.Length,
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

func toPackageOrderSummaries(orders []trade.Order) []PackageOrderSummary {
	out := make([]PackageOrderSummary, len(orders))
	for i, o := range orders {
		out[i] = PackageOrderSummary{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			CustomerName: o.CustomerName,
			Status:       o.Status.String(),
			FinalAmount:  o.FinalAmount,
		}
	}
	return out
}
