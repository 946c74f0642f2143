package promotion

import (
	"fmt"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxUsage is applied when a coupon is created without a usage cap
const DefaultMaxUsage = 100

var (
	hundred    = decimal.NewFromInt(100)
	upperCaser = cases.Upper(language.Und)
)

// Coupon validation failures
var (
	ErrCouponInactive       = shared.NewDomainError("COUPON_INACTIVE", "Coupon is not active")
	ErrCouponExpired        = shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired")
	ErrCouponExhausted      = shared.NewDomainError("COUPON_EXHAUSTED", "Coupon usage limit reached")
	ErrCouponNotEligible    = shared.NewDomainError("COUPON_NOT_ELIGIBLE", "Coupon is not applicable for this customer")
	ErrCouponPriceCondition = shared.NewDomainError("COUPON_PRICE_CONDITION", "Order amount does not meet the coupon price condition")
)

// PriceCondition bounds the order subtotal a coupon accepts. A nil bound is open.
type PriceCondition struct {
	Low  *decimal.Decimal
	High *decimal.Decimal
}

// IsSet reports whether either bound is configured
func (pc PriceCondition) IsSet() bool {
	return pc.Low != nil || pc.High != nil
}

// Contains reports whether amount lies within [Low, High]
func (pc PriceCondition) Contains(amount decimal.Decimal) bool {
	if pc.Low != nil && amount.LessThan(*pc.Low) {
		return false
	}
	if pc.High != nil && amount.GreaterThan(*pc.High) {
		return false
	}
	return true
}

func (pc PriceCondition) validate() error {
	if pc.Low != nil && pc.Low.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE_CONDITION", "Low price cannot be negative")
	}
	if pc.High != nil && pc.High.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE_CONDITION", "High price cannot be negative")
	}
	if pc.Low != nil && pc.High != nil && pc.Low.GreaterThan(*pc.High) {
		return shared.NewDomainError("INVALID_PRICE_CONDITION", "Low price cannot exceed high price")
	}
	return nil
}

// CouponUsage is one entry of a coupon's usage ledger
type CouponUsage struct {
	CouponID   uuid.UUID
	CustomerID uuid.UUID
	OrderID    uuid.UUID
	UsedAt     time.Time
}

// CouponTerms are the editable terms of a coupon
type CouponTerms struct {
	Description         string
	ApplicableCustomers []uuid.UUID // empty means every active customer
	PriceCondition      PriceCondition
	ReductionPrice      decimal.Decimal
	ReductionPercent    decimal.Decimal
	MaxUsage            int
	ExpiryDate          time.Time
}

// Coupon is a code that takes money off an order
type Coupon struct {
	shared.BaseAggregateRoot
	Code                string
	Description         string
	ApplicableCustomers []uuid.UUID
	PriceCondition      PriceCondition
	ReductionPrice      decimal.Decimal
	ReductionPercent    decimal.Decimal
	MaxUsage            int
	UsedCount           int
	UsedBy              []CouponUsage
	IsActive            bool
	ExpiryDate          time.Time
}

// NormalizeCouponCode trims and upper-cases a coupon code
func NormalizeCouponCode(code string) string {
	return upperCaser.String(strings.TrimSpace(code))
}

// NewCoupon creates a new active coupon
func NewCoupon(code string, terms CouponTerms) (*Coupon, error) {
	code = NormalizeCouponCode(code)
	if err := validateCouponCode(code); err != nil {
		return nil, err
	}
	if terms.MaxUsage == 0 {
		terms.MaxUsage = DefaultMaxUsage
	}
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	c := &Coupon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		IsActive:          true,
		UsedBy:            make([]CouponUsage, 0),
	}
	c.applyTerms(terms)
	c.AddDomainEvent(NewCouponCreatedEvent(c))
	return c, nil
}

// Update replaces the terms of the coupon. The cap cannot drop below recorded usage.
func (c *Coupon) Update(terms CouponTerms) error {
	if terms.MaxUsage == 0 {
		terms.MaxUsage = c.MaxUsage
	}
	if err := validateTerms(terms); err != nil {
		return err
	}
	if terms.MaxUsage < c.UsedCount {
		return NewMaxUsageError(c.UsedCount)
	}
	c.applyTerms(terms)
	c.touch()
	return nil
}

// Rename changes the coupon code
func (c *Coupon) Rename(code string) error {
	code = NormalizeCouponCode(code)
	if err := validateCouponCode(code); err != nil {
		return err
	}
	c.Code = code
	c.touch()
	return nil
}

// NewMaxUsageError refuses a cap lower than the uses already recorded
func NewMaxUsageError(used int) error {
	return shared.NewDomainError("INVALID_MAX_USAGE",
		fmt.Sprintf("Max usage cannot be lower than current usage (%d)", used))
}

func (c *Coupon) applyTerms(terms CouponTerms) {
	c.Description = strings.TrimSpace(terms.Description)
	c.ApplicableCustomers = dedupeIDs(terms.ApplicableCustomers)
	c.PriceCondition = terms.PriceCondition
	c.ReductionPrice = terms.ReductionPrice
	c.ReductionPercent = terms.ReductionPercent
	c.MaxUsage = terms.MaxUsage
	c.ExpiryDate = terms.ExpiryDate
}

// Toggle flips the active flag
func (c *Coupon) Toggle() {
	c.IsActive = !c.IsActive
	c.touch()
}

// Deactivate soft-deletes the coupon
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.touch()
}

// IsExpired reports whether the coupon has reached its expiry date at now
func (c *Coupon) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiryDate)
}

// IsExhausted reports whether every use has been spent
func (c *Coupon) IsExhausted() bool {
	return c.UsedCount >= c.MaxUsage
}

// RemainingUsage returns how many more orders may use the coupon
func (c *Coupon) RemainingUsage() int {
	if c.UsedCount >= c.MaxUsage {
		return 0
	}
	return c.MaxUsage - c.UsedCount
}

// AppliesToAllCustomers reports whether the eligibility set is empty
func (c *Coupon) AppliesToAllCustomers() bool {
	return len(c.ApplicableCustomers) == 0
}

// IsEligible reports whether customerID may use the coupon.
// An empty eligibility set admits every customer; the caller checks the customer is active.
func (c *Coupon) IsEligible(customerID uuid.UUID) bool {
	if c.AppliesToAllCustomers() {
		return true
	}
	for _, id := range c.ApplicableCustomers {
		if id == customerID {
			return true
		}
	}
	return false
}

// Validate checks the coupon against a subtotal and customer at now and
// returns the discount it grants. Checks run in a fixed order:
// active, expiry, usage, eligibility, price condition.
func (c *Coupon) Validate(subtotal decimal.Decimal, customerID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	return c.ValidateFor(subtotal, customerID, true, now)
}

// ValidateFor is Validate for a customer whose active flag is known.
// An inactive customer is never eligible.
func (c *Coupon) ValidateFor(subtotal decimal.Decimal, customerID uuid.UUID, customerActive bool, now time.Time) (decimal.Decimal, error) {
	if !c.IsActive {
		return decimal.Zero, ErrCouponInactive
	}
	if c.IsExpired(now) {
		return decimal.Zero, ErrCouponExpired
	}
	if c.IsExhausted() {
		return decimal.Zero, ErrCouponExhausted
	}
	if !customerActive || !c.IsEligible(customerID) {
		return decimal.Zero, ErrCouponNotEligible
	}
	if c.PriceCondition.IsSet() && !c.PriceCondition.Contains(subtotal) {
		return decimal.Zero, ErrCouponPriceCondition
	}
	return c.DiscountFor(subtotal), nil
}

// DiscountFor computes the reduction for subtotal, never exceeding it
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsNegative() || subtotal.IsZero() {
		return decimal.Zero
	}
	var amount decimal.Decimal
	if c.ReductionPrice.IsPositive() {
		amount = c.ReductionPrice
	} else {
		amount = subtotal.Mul(c.ReductionPercent).Div(hundred).Round(2)
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}

// RecordUsage appends a ledger entry for a successful order
func (c *Coupon) RecordUsage(customerID, orderID uuid.UUID, at time.Time) (CouponUsage, error) {
	if c.IsExhausted() {
		return CouponUsage{}, ErrCouponExhausted
	}
	usage := CouponUsage{CouponID: c.ID, CustomerID: customerID, OrderID: orderID, UsedAt: at}
	c.UsedBy = append(c.UsedBy, usage)
	c.UsedCount++
	c.AddDomainEvent(NewCouponRedeemedEvent(c, usage))
	return usage, nil
}

func (c *Coupon) touch() {
	c.Touch(time.Now())
}

func validateCouponCode(code string) error {
	if len(code) < 3 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code must be at least 3 characters")
	}
	if len(code) > 20 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 20 characters")
	}
	return nil
}

func validateTerms(terms CouponTerms) error {
	if terms.ReductionPrice.IsNegative() {
		return shared.NewDomainError("INVALID_REDUCTION", "Reduction price cannot be negative")
	}
	if terms.ReductionPercent.IsNegative() {
		return shared.NewDomainError("INVALID_REDUCTION", "Reduction percent cannot be negative")
	}
	if terms.ReductionPercent.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_REDUCTION", "Reduction percent cannot exceed 100")
	}
	hasPrice := terms.ReductionPrice.IsPositive()
	hasPercent := terms.ReductionPercent.IsPositive()
	if !hasPrice && !hasPercent {
		return shared.NewDomainError("INVALID_REDUCTION", "Either reduction price or reduction percent must be provided")
	}
	if hasPrice && hasPercent {
		return shared.NewDomainError("INVALID_REDUCTION", "Cannot have both reduction price and reduction percent")
	}
	if terms.MaxUsage < 1 {
		return shared.NewDomainError("INVALID_MAX_USAGE", "Max usage must be at least 1")
	}
	if terms.ExpiryDate.IsZero() {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}
	if len(terms.Description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	return terms.PriceCondition.validate()
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
