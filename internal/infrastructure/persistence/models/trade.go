package models

import (
	"sort"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	AggregateModel
	OrderNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	CustomerName    string              `gorm:"type:varchar(100);not null"`
	TotalMRP        decimal.Decimal     `gorm:"column:total_mrp;type:decimal(12,2);not null"`
	DiscountAmount  decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	CouponCode      string              `gorm:"type:varchar(50)"`
	Status          string              `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus   string              `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod   string              `gorm:"type:varchar(20);not null;default:'cod'"`
	TrackingID      string              `gorm:"type:varchar(100)"`
	ShippingAddress valueobject.Address `gorm:"type:jsonb"`
	ConfirmedAt     *time.Time
	ProcessingAt    *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		OrderNumber:     m.OrderNumber,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		Items:           make([]trade.LineItem, 0, len(m.Items)),
		TotalMRP:        m.TotalMRP,
		DiscountAmount:  m.DiscountAmount,
		FinalAmount:     m.FinalAmount,
		CouponCode:      m.CouponCode,
		Status:          trade.OrderStatus(m.Status),
		PaymentStatus:   trade.PaymentStatus(m.PaymentStatus),
		PaymentMethod:   trade.PaymentMethod(m.PaymentMethod),
		TrackingID:      m.TrackingID,
		ShippingAddress: m.ShippingAddress,
		ConfirmedAt:     m.ConfirmedAt,
		ProcessingAt:    m.ProcessingAt,
		ShippedAt:       m.ShippedAt,
		DeliveredAt:     m.DeliveredAt,
		CancelledAt:     m.CancelledAt,
		CancelReason:    m.CancelReason,
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)

	items := append([]OrderItemModel(nil), m.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	for _, item := range items {
		o.Items = append(o.Items, item.ToDomain())
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.TotalMRP = o.TotalMRP
	m.DiscountAmount = o.DiscountAmount
	m.FinalAmount = o.FinalAmount
	m.CouponCode = o.CouponCode
	m.Status = string(o.Status)
	m.PaymentStatus = string(o.PaymentStatus)
	m.PaymentMethod = string(o.PaymentMethod)
	m.TrackingID = o.TrackingID
	m.ShippingAddress = o.ShippingAddress
	m.ConfirmedAt = o.ConfirmedAt
	m.ProcessingAt = o.ProcessingAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(o.ID, i, item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is a line item snapshot of an order
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Image       string          `gorm:"type:varchar(500)"`
	Size        string          `gorm:"type:varchar(5);not null"`
	Color       string          `gorm:"type:varchar(50);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the row to a domain LineItem
func (m *OrderItemModel) ToDomain() trade.LineItem {
	return trade.LineItem{
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		ProductName: m.ProductName,
		Description: m.Description,
		Image:       m.Image,
		Size:        m.Size,
		Color:       m.Color,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Amount:      m.Amount,
	}
}

// OrderItemModelFromDomain creates the row for the item at position of an order
func OrderItemModelFromDomain(orderID uuid.UUID, position int, item trade.LineItem) OrderItemModel {
	return OrderItemModel{
		ID:          uuid.New(),
		OrderID:     orderID,
		Position:    position,
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

// PackageModel is the persistence model for the Package aggregate root
type PackageModel struct {
	AggregateModel
	PackageNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status            string          `gorm:"type:varchar(20);not null;default:'packed';index"`
	TrackingID        string          `gorm:"type:varchar(100);index"`
	CourierService    string          `gorm:"type:varchar(100)"`
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	ShippedAt         *time.Time
	Weight            decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Length            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Width             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Height            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Orders []PackageOrderModel `gorm:"foreignKey:PackageID"`
}

// TableName returns the table name for GORM
func (PackageModel) TableName() string {
	return "packages"
}

// ToDomain converts the persistence model to a domain Package entity
func (m *PackageModel) ToDomain() *trade.Package {
	p := &trade.Package{
		PackageNumber:     m.PackageNumber,
		OrderIDs:          make([]uuid.UUID, 0, len(m.Orders)),
		Status:            trade.PackageStatus(m.Status),
		TrackingID:        m.TrackingID,
		CourierService:    m.CourierService,
		EstimatedDelivery: m.EstimatedDelivery,
		ActualDelivery:    m.ActualDelivery,
		ShippedAt:         m.ShippedAt,
		Weight:            m.Weight,
		Dimensions: trade.Dimensions{
			Length: m.Length,
			Width:  m.Width,
			Height: m.Height,
		},
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)

	orders := append([]PackageOrderModel(nil), m.Orders...)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Position < orders[j].Position })
	for _, po := range orders {
		p.OrderIDs = append(p.OrderIDs, po.OrderID)
	}
	return p
}

// FromDomain populates the persistence model from a domain Package entity
func (m *PackageModel) FromDomain(p *trade.Package) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PackageNumber = p.PackageNumber
	m.Status = string(p.Status)
	m.TrackingID = p.TrackingID
	m.CourierService = p.CourierService
	m.EstimatedDelivery = p.EstimatedDelivery
	m.ActualDelivery = p.ActualDelivery
	m.ShippedAt = p.ShippedAt
	m.Weight = p.Weight
	m.Length = p.Dimensions.Length
	m.Width = p.Dimensions.Width
	m.Height = p.Dimensions.Height

	m.Orders = make([]PackageOrderModel, len(p.OrderIDs))
	for i, orderID := range p.OrderIDs {
		m.Orders[i] = PackageOrderModel{PackageID: p.ID, OrderID: orderID, Position: i}
	}
}

// PackageModelFromDomain creates a new persistence model from a domain Package entity
func PackageModelFromDomain(p *trade.Package) *PackageModel {
	m := &PackageModel{}
	m.FromDomain(p)
	return m
}

// PackageOrderModel assigns an order to a package. An order belongs to at most one package.
type PackageOrderModel struct {
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PackageOrderModel) TableName() string {
	return "package_orders"
}

// SequenceModel is a named counter used for display numbers
type SequenceModel struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "sequences"
}
