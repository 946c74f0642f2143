package catalog

import (
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
)

// ErrCollectionHasProducts refuses to delete a collection that products still reference
var ErrCollectionHasProducts = shared.NewDomainError("COLLECTION_HAS_PRODUCTS", "Cannot delete a collection that still has products")

// Collection groups products for merchandising
type Collection struct {
	shared.BaseAggregateRoot
	Name          string
	Image         string
	Description   string
	IsActive      bool
	ProductsCount int
}

// NewCollection creates a new active collection with no products
func NewCollection(name, image, description string) (*Collection, error) {
	name = strings.TrimSpace(name)
	if err := validateCollectionName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	c := &Collection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Image:             strings.TrimSpace(image),
		Description:       description,
		IsActive:          true,
	}
	c.AddDomainEvent(NewCollectionCreatedEvent(c))
	return c, nil
}

// Update changes the descriptive fields. The product count is not editable.
func (c *Collection) Update(name, image, description string) error {
	name = strings.TrimSpace(name)
	if err := validateCollectionName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	c.Name = name
	c.Image = strings.TrimSpace(image)
	c.Description = description
	c.Touch(time.Now())
	return nil
}

// CanDelete reports whether the collection is free of products
func (c *Collection) CanDelete() bool {
	return c.ProductsCount <= 0
}

// Deactivate soft-deletes the collection
func (c *Collection) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_DELETED", "Collection is already deleted")
	}
	if !c.CanDelete() {
		return ErrCollectionHasProducts
	}

	c.IsActive = false
	c.Touch(time.Now())
	c.AddDomainEvent(NewCollectionDeletedEvent(c))
	return nil
}

func validateCollectionName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Collection name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Collection name cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	return nil
}
