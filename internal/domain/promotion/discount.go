package promotion

import (
	"sort"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDiscountPercent caps a product discount
var MaxDiscountPercent = decimal.NewFromInt(90)

// DiscountTerms are the editable terms of a discount
type DiscountTerms struct {
	Name        string
	Description string
	Products    []uuid.UUID // empty means every active product
	Percent     decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

// Discount is a time-boxed percentage reduction on a set of products
type Discount struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Products    []uuid.UUID
	Percent     decimal.Decimal
	IsActive    bool
	StartDate   time.Time
	EndDate     time.Time
}

// NewDiscount creates a new active discount
func NewDiscount(terms DiscountTerms) (*Discount, error) {
	terms.Name = strings.TrimSpace(terms.Name)
	if err := validateDiscountTerms(terms); err != nil {
		return nil, err
	}
	d := &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IsActive:          true,
	}
	d.applyTerms(terms)
	d.AddDomainEvent(NewDiscountCreatedEvent(d))
	return d, nil
}

// Update replaces the terms of the discount
func (d *Discount) Update(terms DiscountTerms) error {
	terms.Name = strings.TrimSpace(terms.Name)
	if err := validateDiscountTerms(terms); err != nil {
		return err
	}
	d.applyTerms(terms)
	d.touch()
	return nil
}

func (d *Discount) applyTerms(terms DiscountTerms) {
	d.Name = terms.Name
	d.Description = strings.TrimSpace(terms.Description)
	d.Products = dedupeIDs(terms.Products)
	d.Percent = terms.Percent
	d.StartDate = terms.StartDate
	d.EndDate = terms.EndDate
}

// Toggle flips the active flag
func (d *Discount) Toggle() {
	d.IsActive = !d.IsActive
	d.touch()
}

// Deactivate soft-deletes the discount
func (d *Discount) Deactivate() {
	d.IsActive = false
	d.touch()
}

// IsRunning reports whether the discount is active and now lies in [StartDate, EndDate)
func (d *Discount) IsRunning(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartDate) && now.Before(d.EndDate)
}

// AppliesTo reports whether productID is covered by the product set
func (d *Discount) AppliesTo(productID uuid.UUID) bool {
	if len(d.Products) == 0 {
		return true
	}
	for _, id := range d.Products {
		if id == productID {
			return true
		}
	}
	return false
}

// Apply returns price reduced by the discount percent, rounded to 2 places
func (d *Discount) Apply(price decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(d.Percent).Div(hundred)
	return price.Mul(factor).Round(2)
}

func (d *Discount) touch() {
	d.Touch(time.Now())
}

// BestDiscount picks the discount that applies to productID at now.
// Ties on percent go to the most recently created discount, then to the larger ID.
func BestDiscount(discounts []Discount, productID uuid.UUID, now time.Time) *Discount {
	candidates := make([]*Discount, 0, len(discounts))
	for i := range discounts {
		d := &discounts[i]
		if d.IsRunning(now) && d.AppliesTo(productID) {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Percent.Equal(b.Percent) {
			return a.Percent.GreaterThan(b.Percent)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	return candidates[0]
}

// EffectivePrice applies the best discount for productID to price.
// It returns the price unchanged and a nil discount when none applies.
func EffectivePrice(discounts []Discount, productID uuid.UUID, price decimal.Decimal, now time.Time) (decimal.Decimal, *Discount) {
	best := BestDiscount(discounts, productID, now)
	if best == nil {
		return price, nil
	}
	return best.Apply(price), best
}

func validateDiscountTerms(terms DiscountTerms) error {
	if terms.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if len(terms.Name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Discount name cannot exceed 100 characters")
	}
	if len(terms.Description) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 200 characters")
	}
	if !terms.Percent.IsPositive() {
		return shared.NewDomainError("INVALID_PERCENT", "Discount percent must be greater than 0")
	}
	if terms.Percent.GreaterThan(MaxDiscountPercent) {
		return shared.NewDomainError("INVALID_PERCENT", "Discount cannot exceed 90%")
	}
	if terms.StartDate.IsZero() || terms.EndDate.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Start and end dates are required")
	}
	if !terms.EndDate.After(terms.StartDate) {
		return shared.NewDomainError("INVALID_DATES", "End date must be after start date")
	}
	return nil
}
