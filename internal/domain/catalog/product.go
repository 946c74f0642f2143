package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductType is the garment category
type ProductType string

const (
	ProductTypeTop    ProductType = "top"
	ProductTypeBottom ProductType = "bottom"
)

// IsValid checks if the type is known
func (t ProductType) IsValid() bool {
	return t == ProductTypeTop || t == ProductTypeBottom
}

// Gender is the audience a product is cut for
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
	GenderUnisex Gender = "unisex"
)

// IsValid checks if the gender is known
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnisex
}

// VariantKey identifies a variant within a product
type VariantKey struct {
	Size  Size
	Color string
}

// String returns "SIZE/color"
func (k VariantKey) String() string {
	return fmt.Sprintf("%s/%s", k.Size, k.Color)
}

// ProductAttributes carries the mutable descriptive fields of a product
type ProductAttributes struct {
	Name        string
	Description string
	Type        ProductType
	Gender      Gender
	Activity    string
}

// Product is a catalog item sold in several size/color variants
type Product struct {
	shared.BaseAggregateRoot
	CollectionID    uuid.UUID
	Name            string
	Description     string
	Type            ProductType
	Gender          Gender
	Activity        string
	AvailableColors []string
	AvailableSizes  []Size
	Images          map[string][]string // color -> image URLs
	IsActive        bool
}

// NewProduct creates a new active product in the given collection
func NewProduct(collectionID uuid.UUID, attrs ProductAttributes, colors, sizes []string) (*Product, error) {
	if collectionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTION", "Collection ID cannot be empty")
	}
	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	normColors, err := NormalizeColors(colors)
	if err != nil {
		return nil, err
	}
	if len(normColors) == 0 {
		return nil, shared.NewDomainError("INVALID_COLORS", "At least one color is required")
	}
	normSizes, err := ParseSizes(sizes)
	if err != nil {
		return nil, err
	}
	if len(normSizes) == 0 {
		return nil, shared.NewDomainError("INVALID_SIZES", "At least one size is required")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CollectionID:      collectionID,
		Name:              attrs.Name,
		Description:       attrs.Description,
		Type:              attrs.Type,
		Gender:            attrs.Gender,
		Activity:          strings.TrimSpace(attrs.Activity),
		AvailableColors:   normColors,
		AvailableSizes:    normSizes,
		Images:            make(map[string][]string),
		IsActive:          true,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// Update changes the descriptive fields
func (p *Product) Update(attrs ProductAttributes) error {
	if !p.IsActive {
		return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot update a deleted product")
	}
	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := validateAttributes(attrs); err != nil {
		return err
	}

	p.Name = attrs.Name
	p.Description = attrs.Description
	p.Type = attrs.Type
	p.Gender = attrs.Gender
	p.Activity = strings.TrimSpace(attrs.Activity)
	p.touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetAvailability replaces the declared colors and sizes.
// It refuses to drop a size or color still used by one of the existing variants.
func (p *Product) SetAvailability(colors, sizes []string, existing []VariantKey) error {
	normColors, err := NormalizeColors(colors)
	if err != nil {
		return err
	}
	if len(normColors) == 0 {
		return shared.NewDomainError("INVALID_COLORS", "At least one color is required")
	}
	normSizes, err := ParseSizes(sizes)
	if err != nil {
		return err
	}
	if len(normSizes) == 0 {
		return shared.NewDomainError("INVALID_SIZES", "At least one size is required")
	}

	next := &Product{AvailableColors: normColors, AvailableSizes: normSizes}
	for _, key := range existing {
		if !next.Supports(key.Size, key.Color) {
			return shared.NewDomainError("VARIANT_IN_USE",
				fmt.Sprintf("Variant %s exists; keep its size and color available", key))
		}
	}

	p.AvailableColors = normColors
	p.AvailableSizes = normSizes
	p.touch()
	return nil
}

// MoveToCollection reassigns the product and returns the previous collection
func (p *Product) MoveToCollection(collectionID uuid.UUID) (uuid.UUID, error) {
	if collectionID == uuid.Nil {
		return uuid.Nil, shared.NewDomainError("INVALID_COLLECTION", "Collection ID cannot be empty")
	}
	previous := p.CollectionID
	if previous == collectionID {
		return previous, nil
	}
	p.CollectionID = collectionID
	p.touch()
	return previous, nil
}

// SetImages stores the image URLs shown for a color
func (p *Product) SetImages(color string, urls []string) error {
	color = NormalizeColor(color)
	if !p.HasColor(color) {
		return shared.NewDomainError("INVALID_COLOR", fmt.Sprintf("Color %q is not available for this product", color))
	}
	if p.Images == nil {
		p.Images = make(map[string][]string)
	}
	if len(urls) == 0 {
		delete(p.Images, color)
	} else {
		p.Images[color] = append([]string(nil), urls...)
	}
	p.touch()
	return nil
}

// PrimaryImage returns the first image for color, falling back to any image
func (p *Product) PrimaryImage(color string) string {
	if urls := p.Images[NormalizeColor(color)]; len(urls) > 0 {
		return urls[0]
	}
	for _, c := range p.AvailableColors {
		if urls := p.Images[c]; len(urls) > 0 {
			return urls[0]
		}
	}
	return ""
}

// HasColor checks membership in the declared colors
func (p *Product) HasColor(color string) bool {
	for _, c := range p.AvailableColors {
		if c == color {
			return true
		}
	}
	return false
}

// HasSize checks membership in the declared sizes
func (p *Product) HasSize(size Size) bool {
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Supports reports whether (size, color) is a legal variant of the product
func (p *Product) Supports(size Size, color string) bool {
	return p.HasSize(size) && p.HasColor(NormalizeColor(color))
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() error {
	if !p.IsActive {
		return shared.NewDomainError("ALREADY_DELETED", "Product is already deleted")
	}
	p.IsActive = false
	p.touch()
	p.AddDomainEvent(NewProductDeletedEvent(p))
	return nil
}

func (p *Product) touch() {
	p.Touch(time.Now())
}

func validateAttributes(attrs ProductAttributes) error {
	if attrs.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(attrs.Name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if err := validateDescription(attrs.Description); err != nil {
		return err
	}
	if !attrs.Type.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Product type must be top or bottom")
	}
	if !attrs.Gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Gender must be m, f or unisex")
	}
	if len(attrs.Activity) > 50 {
		return shared.NewDomainError("INVALID_ACTIVITY", "Activity cannot exceed 50 characters")
	}
	return nil
}
