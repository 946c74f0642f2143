package models

import (
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateModel carries the identity, timestamps and change counter every
// aggregate table shares.
type AggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot copies the aggregate's identity and version onto the row
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// PopulateAggregateRoot is the reverse of FromDomainAggregateRoot
func (m *AggregateModel) PopulateAggregateRoot(a *shared.BaseAggregateRoot) {
	a.BaseEntity = shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	a.Version = m.Version
	a.MarkStored()
}

// All returns every table model in creation order, parents first
func All() []any {
	return []any{
		&CollectionModel{}, &ProductModel{}, &VariantModel{},
		&CustomerModel{},
		&CouponModel{}, &CouponUsageModel{}, &DiscountModel{},
		&OrderModel{}, &OrderItemModel{},
		&PackageModel{}, &PackageOrderModel{},
		&SequenceModel{},
	}
}
