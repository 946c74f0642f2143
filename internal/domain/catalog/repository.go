package catalog

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// FindByID finds a collection by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Collection, error)

	// FindAll finds collections matching the filter.
	// Supported filters: "is_active" (bool)
	FindAll(ctx context.Context, filter shared.Filter) ([]Collection, error)

	// Count counts collections matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks name uniqueness, ignoring excludeID when set
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a collection
	Save(ctx context.Context, collection *Collection) error

	// AdjustProductsCount atomically adds delta to the cached product count.
	// The stored count never drops below zero.
	AdjustProductsCount(ctx context.Context, id uuid.UUID, delta int) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products matching the filter.
	// Supported filters: "collection_id", "type", "gender", "is_active"
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// VariantRepository defines the interface for variant persistence
type VariantRepository interface {
	// FindByID finds a variant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)

	// FindByProduct lists the variants of a product ordered by size then color
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)

	// Upsert inserts the variant or, when (product, size, color) exists,
	// updates quantity and price of the existing row. The stored row is written back to v.
	Upsert(ctx context.Context, v *Variant) error

	// DeleteByProduct removes every variant of a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// DecrementStock removes quantity units if at least that many are in stock.
	// Returns shared.ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// IncrementStock returns quantity units to stock
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
