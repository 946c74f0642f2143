package models

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionModel is the persistence model for the Collection aggregate root
type CollectionModel struct {
	AggregateModel
	Name          string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Image         string `gorm:"type:varchar(500)"`
	Description   string `gorm:"type:text"`
	IsActive      bool   `gorm:"not null;default:true;index"`
	ProductsCount int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts the persistence model to a domain Collection entity
func (m *CollectionModel) ToDomain() *catalog.Collection {
	c := &catalog.Collection{
		Name:          m.Name,
		Image:         m.Image,
		Description:   m.Description,
		IsActive:      m.IsActive,
		ProductsCount: m.ProductsCount,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Collection entity
func (m *CollectionModel) FromDomain(c *catalog.Collection) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Image = c.Image
	m.Description = c.Description
	m.IsActive = c.IsActive
	m.ProductsCount = c.ProductsCount
}

// CollectionModelFromDomain creates a new persistence model from a domain Collection entity
func CollectionModelFromDomain(c *catalog.Collection) *CollectionModel {
	m := &CollectionModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product aggregate root.
// Colors, sizes and the per-color image lists are stored as JSON.
type ProductModel struct {
	AggregateModel
	CollectionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(200);not null"`
	Description     string    `gorm:"type:text"`
	Type            string    `gorm:"type:varchar(20);not null;index"`
	Gender          string    `gorm:"type:varchar(20);not null;index"`
	Activity        string    `gorm:"type:varchar(100)"`
	AvailableColors string    `gorm:"type:jsonb;default:'[]'"`
	AvailableSizes  string    `gorm:"type:jsonb;default:'[]'"`
	Images          string    `gorm:"type:jsonb;default:'{}'"`
	IsActive        bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		CollectionID:    m.CollectionID,
		Name:            m.Name,
		Description:     m.Description,
		Type:            catalog.ProductType(m.Type),
		Gender:          catalog.Gender(m.Gender),
		Activity:        m.Activity,
		AvailableColors: make([]string, 0),
		AvailableSizes:  make([]catalog.Size, 0),
		Images:          make(map[string][]string),
		IsActive:        m.IsActive,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)

	decodeJSON(m.AvailableColors, &p.AvailableColors, "available_colors", m.ID)
	decodeJSON(m.AvailableSizes, &p.AvailableSizes, "available_sizes", m.ID)
	decodeJSON(m.Images, &p.Images, "images", m.ID)
	return p
}

// FromDomain populates the persistence model from a domain Product entity
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.CollectionID = p.CollectionID
	m.Name = p.Name
	m.Description = p.Description
	m.Type = string(p.Type)
	m.Gender = string(p.Gender)
	m.Activity = p.Activity
	m.IsActive = p.IsActive

	m.AvailableColors = "[]"
	if len(p.AvailableColors) > 0 {
		m.AvailableColors = encodeJSON(p.AvailableColors, "[]")
	}
	m.AvailableSizes = "[]"
	if len(p.AvailableSizes) > 0 {
		m.AvailableSizes = encodeJSON(p.AvailableSizes, "[]")
	}
	m.Images = "{}"
	if len(p.Images) > 0 {
		m.Images = encodeJSON(p.Images, "{}")
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// VariantModel is the persistence model for a product variant.
// (product_id, size, color) is unique.
type VariantModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_variant_key,priority:1"`
	Size      string          `gorm:"type:varchar(5);not null;uniqueIndex:idx_variant_key,priority:2"`
	Color     string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_variant_key,priority:3"`
	Quantity  int             `gorm:"not null;default:0;check:chk_variant_quantity,quantity >= 0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "variants"
}

// ToDomain converts the persistence model to a domain Variant entity
func (m *VariantModel) ToDomain() *catalog.Variant {
	return &catalog.Variant{
		ID:        m.ID,
		ProductID: m.ProductID,
		Size:      catalog.Size(m.Size),
		Color:     m.Color,
		Quantity:  m.Quantity,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// VariantModelFromDomain creates a new persistence model from a domain Variant entity
func VariantModelFromDomain(v *catalog.Variant) *VariantModel {
	return &VariantModel{
		ID:        v.ID,
		ProductID: v.ProductID,
		Size:      v.Size.String(),
		Color:     v.Color,
		Quantity:  v.Quantity,
		Price:     v.Price,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
