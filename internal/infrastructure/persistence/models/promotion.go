package models

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponModel is the persistence model for the Coupon aggregate root.
// The usage ledger lives in coupon_usages.
type CouponModel struct {
	AggregateModel
	Code                string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description         string           `gorm:"type:text"`
	ApplicableCustomers string           `gorm:"type:jsonb;default:'[]'"`
	PriceLow            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PriceHigh           *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ReductionPrice      decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	ReductionPercent    decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	MaxUsage            int              `gorm:"not null"`
	UsedCount           int              `gorm:"not null;default:0"`
	IsActive            bool             `gorm:"not null;default:true;index"`
	ExpiryDate          time.Time        `gorm:"not null"`

	Usages []CouponUsageModel `gorm:"foreignKey:CouponID"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon entity
func (m *CouponModel) ToDomain() *promotion.Coupon {
	c := &promotion.Coupon{
		Code:        m.Code,
		Description: m.Description,
		PriceCondition: promotion.PriceCondition{
			Low:  m.PriceLow,
			High: m.PriceHigh,
		},
		ApplicableCustomers: make([]uuid.UUID, 0),
		ReductionPrice:      m.ReductionPrice,
		ReductionPercent:    m.ReductionPercent,
		MaxUsage:            m.MaxUsage,
		UsedCount:           m.UsedCount,
		UsedBy:              make([]promotion.CouponUsage, 0, len(m.Usages)),
		IsActive:            m.IsActive,
		ExpiryDate:          m.ExpiryDate,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	decodeJSON(m.ApplicableCustomers, &c.ApplicableCustomers, "applicable_customers", m.ID)

	for _, u := range m.Usages {
		c.UsedBy = append(c.UsedBy, u.ToDomain())
	}
	return c
}

// FromDomain populates the persistence model from a domain Coupon entity.
// The ledger is not copied.
func (m *CouponModel) FromDomain(c *promotion.Coupon) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Description = c.Description
	m.PriceLow = c.PriceCondition.Low
	m.PriceHigh = c.PriceCondition.High
	m.ReductionPrice = c.ReductionPrice
	m.ReductionPercent = c.ReductionPercent
	m.MaxUsage = c.MaxUsage
	m.UsedCount = c.UsedCount
	m.IsActive = c.IsActive
	m.ExpiryDate = c.ExpiryDate

	m.ApplicableCustomers = "[]"
	if len(c.ApplicableCustomers) > 0 {
		m.ApplicableCustomers = encodeJSON(c.ApplicableCustomers, "[]")
	}
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon entity
func CouponModelFromDomain(c *promotion.Coupon) *CouponModel {
	m := &CouponModel{}
	m.FromDomain(c)
	return m
}

// CouponUsageModel is one row of a coupon's usage ledger
type CouponUsageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CouponID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null"`
	UsedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CouponUsageModel) TableName() string {
	return "coupon_usages"
}

// ToDomain converts the ledger row to a domain CouponUsage
func (m *CouponUsageModel) ToDomain() promotion.CouponUsage {
	return promotion.CouponUsage{
		CouponID:   m.CouponID,
		CustomerID: m.CustomerID,
		OrderID:    m.OrderID,
		UsedAt:     m.UsedAt,
	}
}

// CouponUsageModelFromDomain creates a ledger row with a fresh ID
func CouponUsageModelFromDomain(u promotion.CouponUsage) *CouponUsageModel {
	return &CouponUsageModel{
		ID:         uuid.New(),
		CouponID:   u.CouponID,
		CustomerID: u.CustomerID,
		OrderID:    u.OrderID,
		UsedAt:     u.UsedAt,
	}
}

// DiscountModel is the persistence model for the Discount aggregate root
type DiscountModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Products    string          `gorm:"type:jsonb;default:'[]'"`
	Percent     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive    bool            `gorm:"not null;default:true;index:idx_discount_running,priority:1"`
	StartDate   time.Time       `gorm:"not null;index:idx_discount_running,priority:2"`
	EndDate     time.Time       `gorm:"not null;index:idx_discount_running,priority:3"`
}

// TableName returns the table name for GORM
func (DiscountModel) TableName() string {
	return "discounts"
}

// ToDomain converts the persistence model to a domain Discount entity
func (m *DiscountModel) ToDomain() *promotion.Discount {
	d := &promotion.Discount{
		Name:        m.Name,
		Description: m.Description,
		Products:    make([]uuid.UUID, 0),
		Percent:     m.Percent,
		IsActive:    m.IsActive,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	decodeJSON(m.Products, &d.Products, "products", m.ID)
	return d
}

// FromDomain populates the persistence model from a domain Discount entity
func (m *DiscountModel) FromDomain(d *promotion.Discount) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.Description = d.Description
	m.Percent = d.Percent
	m.IsActive = d.IsActive
	m.StartDate = d.StartDate
	m.EndDate = d.EndDate

	m.Products = "[]"
	if len(d.Products) > 0 {
		m.Products = encodeJSON(d.Products, "[]")
	}
}

// DiscountModelFromDomain creates a new persistence model from a domain Discount entity
func DiscountModelFromDomain(d *promotion.Discount) *DiscountModel {
	m := &DiscountModel{}
	m.FromDomain(d)
	return m
}
