package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageStatus represents the shipping status of a package
type PackageStatus string

const (
	PackageStatusPacked    PackageStatus = "packed"
	PackageStatusShipped   PackageStatus = "shipped"
	PackageStatusInTransit PackageStatus = "in_transit"
	PackageStatusDelivered PackageStatus = "delivered"
)

// IsValid checks if the status is a valid PackageStatus
func (s PackageStatus) IsValid() bool {
	switch s {
	case PackageStatusPacked, PackageStatusShipped, PackageStatusInTransit, PackageStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of PackageStatus
func (s PackageStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PackageStatus) CanTransitionTo(target PackageStatus) bool {
	switch s {
	case PackageStatusPacked:
		return target == PackageStatusShipped
	case PackageStatusShipped:
		return target == PackageStatusInTransit || target == PackageStatusDelivered
	case PackageStatusInTransit:
		return target == PackageStatusDelivered
	}
	return false
}

// Dimensions of a package in centimetres
type Dimensions struct {
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// ShipmentDetails are the editable courier details of a package
type ShipmentDetails struct {
	TrackingID        string
	CourierService    string
	EstimatedDelivery *time.Time
	Weight            decimal.Decimal // kilograms
	Dimensions        Dimensions
}

func (d ShipmentDetails) validate() error {
	if d.Weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	if d.Dimensions.Length.IsNegative() || d.Dimensions.Width.IsNegative() || d.Dimensions.Height.IsNegative() {
		return shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions cannot be negative")
	}
	if len(d.TrackingID) > 100 {
		return shared.NewDomainError("INVALID_TRACKING_ID", "Tracking ID cannot exceed 100 characters")
	}
	if len(d.CourierService) > 100 {
		return shared.NewDomainError("INVALID_COURIER", "Courier service cannot exceed 100 characters")
	}
	return nil
}

// Package groups orders that ship together
type Package struct {
	shared.BaseAggregateRoot
	PackageNumber     string
	OrderIDs          []uuid.UUID
	Status            PackageStatus
	TrackingID        string
	CourierService    string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	ShippedAt         *time.Time
	Weight            decimal.Decimal
	Dimensions        Dimensions
}

// NewPackage packs orders under packageNumber.
// Every order must be confirmed or processing.
func NewPackage(packageNumber string, orders []*Order, details ShipmentDetails) (*Package, error) {
	if strings.TrimSpace(packageNumber) == "" {
		return nil, shared.NewDomainError("INVALID_PACKAGE_NUMBER", "Package number cannot be empty")
	}
	if len(orders) == 0 {
		return nil, shared.NewDomainError("NO_ORDERS", "Package must contain at least one order")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be empty")
		}
		if seen[o.ID] {
			continue
		}
		if !o.CanBePackaged() {
			return nil, shared.NewDomainError("ORDER_NOT_PACKABLE",
				fmt.Sprintf("Order %s in %s status cannot be packaged", o.OrderNumber, o.Status))
		}
		seen[o.ID] = true
		ids = append(ids, o.ID)
	}

	p := &Package{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PackageNumber:     packageNumber,
		OrderIDs:          ids,
		Status:            PackageStatusPacked,
	}
	p.applyDetails(details)

	p.AddDomainEvent(NewPackageCreatedEvent(p))
	return p, nil
}

// UpdateDetails replaces the courier details. Delivered packages are frozen.
func (p *Package) UpdateDetails(details ShipmentDetails) error {
	if p.Status == PackageStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a delivered package")
	}
	if err := details.validate(); err != nil {
		return err
	}
	p.applyDetails(details)
	p.touch(time.Now())
	return nil
}

func (p *Package) applyDetails(d ShipmentDetails) {
	p.TrackingID = strings.TrimSpace(d.TrackingID)
	p.CourierService = strings.TrimSpace(d.CourierService)
	p.EstimatedDelivery = d.EstimatedDelivery
	p.Weight = d.Weight
	p.Dimensions = d.Dimensions
}

// UpdateStatus advances the package. Shipping requires a tracking id, either
// already recorded or supplied here.
func (p *Package) UpdateStatus(target PackageStatus, trackingID string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown package status %q", target))
	}
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move package from %s to %s", p.Status, target))
	}
	if trackingID = strings.TrimSpace(trackingID); trackingID != "" {
		p.TrackingID = trackingID
	}

	now := time.Now()
	switch target {
	case PackageStatusShipped:
		if p.TrackingID == "" {
			return shared.NewDomainError("TRACKING_REQUIRED", "Tracking ID is required to ship a package")
		}
		p.ShippedAt = &now
	case PackageStatusDelivered:
		p.ActualDelivery = &now
	}

	from := p.Status
	p.Status = target
	p.touch(now)

	p.AddDomainEvent(NewPackageStatusChangedEvent(p, from))
	return nil
}

// OrderStatusFor returns the order status implied by the package status, if any
func (s PackageStatus) OrderStatusFor() (OrderStatus, bool) {
	switch s {
	case PackageStatusShipped:
		return OrderStatusShipped, true
	case PackageStatusDelivered:
		return OrderStatusDelivered, true
	}
	return "", false
}

// Volume returns length * width * height
func (p *Package) Volume() decimal.Decimal {
	return p.Dimensions.Length.Mul(p.Dimensions.Width).Mul(p.Dimensions.Height)
}

func (p *Package) touch(at time.Time) {
	p.Touch(at)
}
