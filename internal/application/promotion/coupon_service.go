package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CouponService handles coupon operations
type CouponService struct {
	couponRepo     promotion.CouponRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewCouponService creates a new CouponService
func NewCouponService(couponRepo promotion.CouponRepository, customerRepo partner.CustomerRepository) *CouponService {
	return &CouponService{
		couponRepo:   couponRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CouponService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new coupon with a unique code
func (s *CouponService) Create(ctx context.Context, req CouponRequest) (*CouponResponse, error) {
	coupon, err := promotion.NewCoupon(req.Code, req.terms())
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, coupon.Code, nil); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	shared.PublishPending(ctx, s.eventPublisher, coupon)

	response := ToCouponResponse(coupon)
	return &response, nil
}

// GetByID retrieves a coupon with its usage ledger
func (s *CouponService) GetByID(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// List retrieves coupons with filtering and pagination
func (s *CouponService) List(ctx context.Context, filter CouponListFilter) ([]CouponResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.Search)
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	coupons, err := s.couponRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.couponRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = ToCouponResponse(&coupons[i])
	}
	return responses, total, nil
}

// Update replaces the terms and code of a coupon
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req CouponRequest) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := promotion.NormalizeCouponCode(req.Code); code != coupon.Code {
		if err := s.ensureUniqueCode(ctx, code, &coupon.ID); err != nil {
			return nil, err
		}
		if err := coupon.Rename(code); err != nil {
			return nil, err
		}
	}
	if err := coupon.Update(req.terms()); err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}

	response := ToCouponResponse(coupon)
	return &response, nil
}

// Delete soft-deletes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	coupon.Deactivate()
	return s.couponRepo.Save(ctx, coupon)
}

// Toggle flips the active flag of a coupon
func (s *CouponService) Toggle(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	coupon.Toggle()
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// Stats summarises the usage of a coupon. An empty eligibility set counts
// every active customer at the time of the call.
func (s *CouponService) Stats(ctx context.Context, id uuid.UUID) (*CouponStatsResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applicable := int64(len(coupon.ApplicableCustomers))
	if coupon.AppliesToAllCustomers() {
		applicable, err = s.customerRepo.CountActive(ctx, identity.RoleCustomer)
		if err != nil {
			return nil, err
		}
	}

	usage := decimal.Zero
	if coupon.MaxUsage > 0 {
		usage = decimal.NewFromInt(int64(coupon.UsedCount)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(coupon.MaxUsage))).
			Round(2)
	}

	return &CouponStatsResponse{
		CouponID:              coupon.ID,
		Code:                  coupon.Code,
		TotalApplicableUsers:  applicable,
		TotalUsed:             coupon.UsedCount,
		MaxUsage:              coupon.MaxUsage,
		UsagePercentage:       usage,
		RemainingUsage:        coupon.RemainingUsage(),
		IsExpired:             coupon.IsExpired(s.now()),
		IsActive:              coupon.IsActive,
		AppliesToAllCustomers: coupon.AppliesToAllCustomers(),
	}, nil
}

// Validate previews a coupon for the caller without touching the ledger.
// Owners may preview on behalf of another customer.
func (s *CouponService) Validate(ctx context.Context, req ValidateCouponRequest) (*ValidateCouponResponse, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	customerID := caller.ID
	if req.CustomerID != nil && *req.CustomerID != caller.ID {
		if !caller.IsOwner() {
			return nil, shared.ErrForbidden
		}
		customerID = *req.CustomerID
	}
	if req.Subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SUBTOTAL", "Subtotal cannot be negative")
	}

	coupon, err := FindCoupon(ctx, s.couponRepo, req.Code)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	amount, err := coupon.ValidateFor(req.Subtotal, customer.ID, customer.IsActive, s.now())
	if err != nil {
		return nil, err
	}
	return &ValidateCouponResponse{
		Code:           coupon.Code,
		Valid:          true,
		Subtotal:       req.Subtotal,
		DiscountAmount: amount,
		FinalAmount:    req.Subtotal.Sub(amount),
	}, nil
}

// FindCoupon looks a coupon up by code, mapping a miss to COUPON_NOT_FOUND
func FindCoupon(ctx context.Context, repo promotion.CouponRepository, code string) (*promotion.Coupon, error) {
	coupon, err := repo.FindByCode(ctx, promotion.NormalizeCouponCode(code))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COUPON_NOT_FOUND", "Coupon not found")
		}
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) ensureUniqueCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.couponRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Coupon with this code already exists")
	}
	return nil
}

func toDomainFilter(page, pageSize int, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search
	return filter
}
