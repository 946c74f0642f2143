package catalog

import (
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeCollection = "Collection"
	AggregateTypeProduct    = "Product"
)

// Event type constants
const (
	EventTypeCollectionCreated = "CollectionCreated"
	EventTypeCollectionDeleted = "CollectionDeleted"
	EventTypeProductCreated    = "ProductCreated"
	EventTypeProductUpdated    = "ProductUpdated"
	EventTypeProductDeleted    = "ProductDeleted"
)

// CollectionCreatedEvent is published when a collection is created
type CollectionCreatedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewCollectionCreatedEvent creates a new CollectionCreatedEvent
func NewCollectionCreatedEvent(c *Collection) *CollectionCreatedEvent {
	return &CollectionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionCreated, AggregateTypeCollection, c.ID),
		CollectionID:    c.ID,
		Name:            c.Name,
	}
}

// CollectionDeletedEvent is published when a collection is soft-deleted
type CollectionDeletedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewCollectionDeletedEvent creates a new CollectionDeletedEvent
func NewCollectionDeletedEvent(c *Collection) *CollectionDeletedEvent {
	return &CollectionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionDeleted, AggregateTypeCollection, c.ID),
		CollectionID:    c.ID,
		Name:            c.Name,
	}
}

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		CollectionID:    p.CollectionID,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is published when a product's attributes change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
	}
}

// ProductDeletedEvent is published when a product is soft-deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	CollectionID uuid.UUID `json:"collection_id"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		CollectionID:    p.CollectionID,
	}
}
