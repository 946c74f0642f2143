package partner

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID, including the order history back-reference
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by (normalised) email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll finds customers matching the filter.
	// Supported filters: "role", "is_active"
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountActive counts active customers with the given role
	CountActive(ctx context.Context, role identity.Role) (int64, error)

	// ExistsByEmail checks email uniqueness, ignoring excludeID when set
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// ExistsByMobile checks mobile uniqueness, ignoring excludeID when set
	ExistsByMobile(ctx context.Context, mobile string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}
