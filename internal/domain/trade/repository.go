package trade

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, line items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its display number
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByIDs finds multiple orders by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)

	// FindAll finds orders matching the filter. Search matches order number and customer name.
	// Supported filters: "status", "payment_status", "customer_id", "from" and "to" (time.Time on created_at)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an order. Line items are written only on create.
	Save(ctx context.Context, order *Order) error
}

// PackageRepository defines the interface for package persistence
type PackageRepository interface {
	// FindByID finds a package by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Package, error)

	// FindAll finds packages matching the filter.
	// Supported filters: "status"
	FindAll(ctx context.Context, filter shared.Filter) ([]Package, error)

	// Count counts packages matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindPackagedOrderIDs returns the subset of orderIDs already assigned to a package
	FindPackagedOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error)

	// ExistsByTrackingID checks tracking id uniqueness, ignoring excludeID when set
	ExistsByTrackingID(ctx context.Context, trackingID string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a package
	Save(ctx context.Context, pkg *Package) error
}
