package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountService handles discount operations
type DiscountService struct {
	discountRepo   promotion.DiscountRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(discountRepo promotion.DiscountRepository, productRepo catalog.ProductRepository) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DiscountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new discount
func (s *DiscountService) Create(ctx context.Context, req DiscountRequest) (*DiscountResponse, error) {
	discount, err := promotion.NewDiscount(req.terms())
	if err != nil {
		return nil, err
	}
	if err := s.ensureProductsExist(ctx, discount.Products); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	shared.PublishPending(ctx, s.eventPublisher, discount)

	response := ToDiscountResponse(discount, s.now())
	return &response, nil
}

// GetByID retrieves a discount by ID
func (s *DiscountService) GetByID(ctx context.Context, id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDiscountResponse(discount, s.now())
	return &response, nil
}

// List retrieves discounts with filtering and pagination
func (s *DiscountService) List(ctx context.Context, filter DiscountListFilter) ([]DiscountResponse, int64, error) {
	now := s.now()
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.Search)
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.Running {
		domainFilter.Filters["running_at"] = now
	}

	discounts, err := s.discountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.discountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DiscountResponse, len(discounts))
	for i := range discounts {
		responses[i] = ToDiscountResponse(&discounts[i], now)
	}
	return responses, total, nil
}

// Update replaces the terms of a discount
func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, req DiscountRequest) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := discount.Update(req.terms()); err != nil {
		return nil, err
	}
	if err := s.ensureProductsExist(ctx, discount.Products); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	response := ToDiscountResponse(discount, s.now())
	return &response, nil
}

// Delete soft-deletes a discount
func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	discount.Deactivate()
	return s.discountRepo.Save(ctx, discount)
}

// Toggle flips the active flag of a discount
func (s *DiscountService) Toggle(ctx context.Context, id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	discount.Toggle()
	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}
	response := ToDiscountResponse(discount, s.now())
	return &response, nil
}

// EffectivePrice returns the sale price of productID at price, evaluated at
// the given moment or now when at is zero
func (s *DiscountService) EffectivePrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, at time.Time) (*EffectivePriceResponse, error) {
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if at.IsZero() {
		at = s.now()
	}
	discounts, err := s.discountRepo.FindRunning(ctx, at)
	if err != nil {
		return nil, err
	}

	effective, best := promotion.EffectivePrice(discounts, productID, price, at)
	resp := &EffectivePriceResponse{
		ProductID:      productID,
		Price:          price,
		EffectivePrice: effective,
		At:             at,
	}
	if best != nil {
		id, pct := best.ID, best.Percent
		resp.DiscountID = &id
		resp.DiscountName = best.Name
		resp.Percent = &pct
	}
	return resp, nil
}

func (s *DiscountService) ensureProductsExist(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return shared.NewDomainError("INVALID_PRODUCTS", fmt.Sprintf("Product %s not found", id))
		}
	}
	return nil
}
