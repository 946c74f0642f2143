package promotion

import (
	"context"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// CouponRepository defines the interface for coupon persistence
type CouponRepository interface {
	// FindByID finds a coupon by ID, including its usage ledger
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)

	// FindByCode finds a coupon by its normalised code
	FindByCode(ctx context.Context, code string) (*Coupon, error)

	// FindAll finds coupons matching the filter. Supported filters: "is_active"
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, error)

	// Count counts coupons matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks code uniqueness, ignoring excludeID when set
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a coupon (not its ledger)
	Save(ctx context.Context, coupon *Coupon) error

	// RecordUsage appends a ledger entry and bumps the usage counter
	// only while the counter is below the cap. Returns ErrCouponExhausted otherwise.
	RecordUsage(ctx context.Context, usage CouponUsage) error
}

// DiscountRepository defines the interface for discount persistence
type DiscountRepository interface {
	// FindByID finds a discount by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Discount, error)

	// FindAll finds discounts matching the filter. Supported filters: "is_active"
	FindAll(ctx context.Context, filter shared.Filter) ([]Discount, error)

	// Count counts discounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindRunning returns active discounts whose window contains at
	FindRunning(ctx context.Context, at time.Time) ([]Discount, error)

	// Save creates or updates a discount
	Save(ctx context.Context, discount *Discount) error
}
