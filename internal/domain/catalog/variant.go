package catalog

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is the stock-keeping unit for one (product, size, color) triple
type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Size      Size
	Color     string
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewVariant creates a variant after checking it against the product's declared sets
func NewVariant(product *Product, size, color string, quantity int, price decimal.Decimal) (*Variant, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot add variants to a deleted product")
	}
	parsed, err := ParseSize(size)
	if err != nil {
		return nil, err
	}
	color = NormalizeColor(color)
	if !product.HasSize(parsed) {
		return nil, shared.NewDomainError("SIZE_NOT_AVAILABLE", "Size "+parsed.String()+" is not available for this product")
	}
	if !product.HasColor(color) {
		return nil, shared.NewDomainError("COLOR_NOT_AVAILABLE", "Color "+color+" is not available for this product")
	}
	if err := validateStock(quantity, price); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Variant{
		ID:        uuid.New(),
		ProductID: product.ID,
		Size:      parsed,
		Color:     color,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Key returns the (size, color) pair of the variant
func (v *Variant) Key() VariantKey {
	return VariantKey{Size: v.Size, Color: v.Color}
}

// HasStock reports whether quantity units can be sold
func (v *Variant) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= v.Quantity
}

func validateStock(quantity int, price decimal.Decimal) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
