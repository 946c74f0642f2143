package models

import (
	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer aggregate root.
// The order history is not stored here; it is read back from the orders table.
type CustomerModel struct {
	AggregateModel
	Name         string              `gorm:"type:varchar(100);not null"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	Mobile       string              `gorm:"type:varchar(20);not null;uniqueIndex"`
	Role         string              `gorm:"type:varchar(20);not null;default:'customer';index"`
	Address      valueobject.Address `gorm:"type:jsonb"`
	IsActive     bool                `gorm:"not null;default:true;index"`
	PasswordHash string              `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Name:         m.Name,
		Email:        m.Email,
		Mobile:       m.Mobile,
		Role:         identity.Role(m.Role),
		Address:      m.Address,
		IsActive:     m.IsActive,
		PasswordHash: m.PasswordHash,
		OrderHistory: make([]uuid.UUID, 0),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Mobile = c.Mobile
	m.Role = c.Role.String()
	m.Address = c.Address
	m.IsActive = c.IsActive
	m.PasswordHash = c.PasswordHash
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
