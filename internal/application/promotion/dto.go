package promotion

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceConditionDTO bounds the subtotal a coupon accepts
type PriceConditionDTO struct {
	Low  *decimal.Decimal `json:"low,omitempty"`
	High *decimal.Decimal `json:"high,omitempty"`
}

// CouponRequest represents a request to create or update a coupon
type CouponRequest struct {
	Code                string            `json:"code" binding:"required,min=3,max=20"`
	Description         string            `json:"description" binding:"max=500"`
	ApplicableCustomers []uuid.UUID       `json:"applicable_customers"`
	PriceCondition      PriceConditionDTO `json:"price_condition"`
	ReductionPrice      decimal.Decimal   `json:"reduction_price"`
	ReductionPercent    decimal.Decimal   `json:"reduction_percent"`
	MaxUsage            int               `json:"max_usage" binding:"min=0"`
	ExpiryDate          time.Time         `json:"expiry_date" binding:"required"`
}

func (r CouponRequest) terms() promotion.CouponTerms {
	return promotion.CouponTerms{
		Description:         r.Description,
		ApplicableCustomers: r.ApplicableCustomers,
		PriceCondition:      promotion.PriceCondition{Low: r.PriceCondition.Low, High: r.PriceCondition.High},
		ReductionPrice:      r.ReductionPrice,
		ReductionPercent:    r.ReductionPercent,
		MaxUsage:            r.MaxUsage,
		ExpiryDate:          r.ExpiryDate,
	}
}

// CouponListFilter represents filter options for the coupon list
type CouponListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// CouponUsageResponse is one ledger entry
type CouponUsageResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	OrderID    uuid.UUID `json:"order_id"`
	UsedAt     time.Time `json:"used_at"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID                  uuid.UUID             `json:"id"`
	Code                string                `json:"code"`
	Description         string                `json:"description"`
	ApplicableCustomers []uuid.UUID           `json:"applicable_customers"`
	PriceCondition      PriceConditionDTO     `json:"price_condition"`
	ReductionPrice      decimal.Decimal       `json:"reduction_price"`
	ReductionPercent    decimal.Decimal       `json:"reduction_percent"`
	MaxUsage            int                   `json:"max_usage"`
	UsedCount           int                   `json:"used_count"`
	UsedBy              []CouponUsageResponse `json:"used_by,omitempty"`
	IsActive            bool                  `json:"is_active"`
	ExpiryDate          time.Time             `json:"expiry_date"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}

// ToCouponResponse converts a domain Coupon to CouponResponse
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	usages := make([]CouponUsageResponse, len(c.UsedBy))
	for i, u := range c.UsedBy {
		usages[i] = CouponUsageResponse{CustomerID: u.CustomerID, OrderID: u.OrderID, UsedAt: u.UsedAt}
	}
	applicable := c.ApplicableCustomers
	if applicable == nil {
		applicable = []uuid.UUID{}
	}
	return CouponResponse{
		ID:                  c.ID,
		Code:                c.Code,
		Description:         c.Description,
		ApplicableCustomers: applicable,
		PriceCondition:      PriceConditionDTO{Low: c.PriceCondition.Low, High: c.PriceCondition.High},
		ReductionPrice:      c.ReductionPrice,
		ReductionPercent:    c.ReductionPercent,
		MaxUsage:            c.MaxUsage,
		UsedCount:           c.UsedCount,
		UsedBy:              usages,
		IsActive:            c.IsActive,
		ExpiryDate:          c.ExpiryDate,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// CouponStatsResponse summarises how a coupon has been used
type CouponStatsResponse struct {
	CouponID              uuid.UUID       `json:"coupon_id"`
	Code                  string          `json:"code"`
	TotalApplicableUsers  int64           `json:"total_applicable_users"`
	TotalUsed             int             `json:"total_used"`
	MaxUsage              int             `json:"max_usage"`
	UsagePercentage       decimal.Decimal `json:"usage_percentage"`
	RemainingUsage        int             `json:"remaining_usage"`
	IsExpired             bool            `json:"is_expired"`
	IsActive              bool            `json:"is_active"`
	AppliesToAllCustomers bool            `json:"applies_to_all_customers"`
}

// ValidateCouponRequest previews a coupon against a subtotal
type ValidateCouponRequest struct {
	Code       string          `json:"code" binding:"required"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CustomerID *uuid.UUID      `json:"customer_id"`
}

// ValidateCouponResponse is the outcome of a coupon preview
type ValidateCouponResponse struct {
	Code           string          `json:"code"`
	Valid          bool            `json:"valid"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// DiscountRequest represents a request to create or update a discount
type DiscountRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=200"`
	Products    []uuid.UUID     `json:"products"`
	Percent     decimal.Decimal `json:"percent"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
	EndDate     time.Time       `json:"end_date" binding:"required"`
}

func (r DiscountRequest) terms() promotion.DiscountTerms {
	return promotion.DiscountTerms{
		Name:        r.Name,
		Description: r.Description,
		Products:    r.Products,
		Percent:     r.Percent,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// DiscountListFilter represents filter options for the discount list
type DiscountListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Running  bool   `form:"running"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// DiscountResponse represents a discount in API responses
type DiscountResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Products    []uuid.UUID     `json:"products"`
	Percent     decimal.Decimal `json:"percent"`
	IsActive    bool            `json:"is_active"`
	IsRunning   bool            `json:"is_running"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToDiscountResponse converts a domain Discount to DiscountResponse at now
func ToDiscountResponse(d *promotion.Discount, now time.Time) DiscountResponse {
	products := d.Products
	if products == nil {
		products = []uuid.UUID{}
	}
	return DiscountResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Products:    products,
		Percent:     d.Percent,
		IsActive:    d.IsActive,
		IsRunning:   d.IsRunning(now),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// EffectivePriceResponse is the sale price of a product at a moment
type EffectivePriceResponse struct {
	ProductID      uuid.UUID        `json:"product_id"`
	Price          decimal.Decimal  `json:"price"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	DiscountID     *uuid.UUID       `json:"discount_id,omitempty"`
	DiscountName   string           `json:"discount_name,omitempty"`
	Percent        *decimal.Decimal `json:"percent,omitempty"`
	At             time.Time        `json:"at"`
}
