package catalog

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Image       string `json:"image" binding:"omitempty,url"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCollectionRequest represents a request to update a collection.
// The product count is not editable.
type UpdateCollectionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Image       *string `json:"image" binding:"omitempty"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CollectionListFilter represents filter options for the collection list
type CollectionListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToCollectionResponse converts a domain Collection to CollectionResponse
func ToCollectionResponse(c *catalog.Collection) CollectionResponse {
	return CollectionResponse{
		ID:            c.ID,
		Name:          c.Name,
		Image:         c.Image,
		Description:   c.Description,
		IsActive:      c.IsActive,
		ProductsCount: c.ProductsCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Version:       c.Version,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	CollectionID    uuid.UUID           `json:"collection_id" binding:"required"`
	Name            string              `json:"name" binding:"required,min=1,max=200"`
	Description     string              `json:"description" binding:"max=2000"`
	Type            string              `json:"type" binding:"required,oneof=top bottom"`
	Gender          string              `json:"gender" binding:"required,oneof=m f unisex"`
	Activity        string              `json:"activity" binding:"max=50"`
	AvailableColors []string            `json:"available_colors" binding:"required,min=1,dive,min=1,max=50"`
	AvailableSizes  []string            `json:"available_sizes" binding:"required,min=1"`
	Images          map[string][]string `json:"images"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	CollectionID    *uuid.UUID          `json:"collection_id"`
	Name            *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string             `json:"description" binding:"omitempty,max=2000"`
	Type            *string             `json:"type" binding:"omitempty,oneof=top bottom"`
	Gender          *string             `json:"gender" binding:"omitempty,oneof=m f unisex"`
	Activity        *string             `json:"activity" binding:"omitempty,max=50"`
	AvailableColors []string            `json:"available_colors" binding:"omitempty,min=1,dive,min=1,max=50"`
	AvailableSizes  []string            `json:"available_sizes" binding:"omitempty,min=1"`
	Images          map[string][]string `json:"images"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search       string     `form:"search"`
	CollectionID *uuid.UUID `form:"-"` // parsed by the handler from collection_id
	Type         string     `form:"type" binding:"omitempty,oneof=top bottom"`
	Gender       string     `form:"gender" binding:"omitempty,oneof=m f unisex"`
	IsActive     *bool      `form:"is_active"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID           `json:"id"`
	CollectionID    uuid.UUID           `json:"collection_id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Type            string              `json:"type"`
	Gender          string              `json:"gender"`
	Activity        string              `json:"activity"`
	AvailableColors []string            `json:"available_colors"`
	AvailableSizes  []string            `json:"available_sizes"`
	Images          map[string][]string `json:"images"`
	IsActive        bool                `json:"is_active"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ProductDetailResponse is a product with its variants priced at read time
type ProductDetailResponse struct {
	ProductResponse
	Variants []VariantResponse `json:"variants"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	sizes := make([]string, len(p.AvailableSizes))
	for i, s := range p.AvailableSizes {
		sizes[i] = s.String()
	}
	images := p.Images
	if images == nil {
		images = map[string][]string{}
	}
	return ProductResponse{
		ID:              p.ID,
		CollectionID:    p.CollectionID,
		Name:            p.Name,
		Description:     p.Description,
		Type:            string(p.Type),
		Gender:          string(p.Gender),
		Activity:        p.Activity,
		AvailableColors: p.AvailableColors,
		AvailableSizes:  sizes,
		Images:          images,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// VariantInput is one entry of a variant upsert batch
type VariantInput struct {
	Size     string          `json:"size" binding:"required"`
	Color    string          `json:"color" binding:"required,max=50"`
	Quantity int             `json:"quantity" binding:"min=0"`
	Price    decimal.Decimal `json:"price"`
}

// UpsertVariantsRequest carries a batch of variants for one product
type UpsertVariantsRequest struct {
	Variants []VariantInput `json:"variants" binding:"required,min=1,max=200,dive"`
}

// VariantResponse represents a variant in API responses
type VariantResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	Size           string           `json:"size"`
	Color          string           `json:"color"`
	Quantity       int              `json:"quantity"`
	Price          decimal.Decimal  `json:"price"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	DiscountID     *uuid.UUID       `json:"discount_id,omitempty"`
	DiscountPct    *decimal.Decimal `json:"discount_percent,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// VariantResult reports the outcome of one batch entry
type VariantResult struct {
	Index   int              `json:"index"`
	Size    string           `json:"size"`
	Color   string           `json:"color"`
	Applied bool             `json:"applied"`
	Variant *VariantResponse `json:"variant,omitempty"`
	Code    string           `json:"code,omitempty"`
	Message string           `json:"message,omitempty"`
}

// UpsertVariantsResult summarises a batch
type UpsertVariantsResult struct {
	ProductID uuid.UUID       `json:"product_id"`
	Applied   int             `json:"applied"`
	Failed    int             `json:"failed"`
	Results   []VariantResult `json:"results"`
}
