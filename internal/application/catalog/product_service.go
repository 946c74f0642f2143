package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/application/uow"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product and variant operations.
// Changes that touch a product and its collection run in one transaction.
type ProductService struct {
	productRepo    catalog.ProductRepository
	variantRepo    catalog.VariantRepository
	discountRepo   promotion.DiscountRepository
	txScope        uow.TransactionScope
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	discountRepo promotion.DiscountRepository,
	txScope uow.TransactionScope,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		discountRepo: discountRepo,
		txScope:      txScope,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a product and increments its collection's product count
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.CollectionID, catalog.ProductAttributes{
		Name:        req.Name,
		Description: req.Description,
		Type:        catalog.ProductType(req.Type),
		Gender:      catalog.Gender(req.Gender),
		Activity:    req.Activity,
	}, req.AvailableColors, req.AvailableSizes)
	if err != nil {
		return nil, err
	}
	for color, urls := range req.Images {
		if err := product.SetImages(color, urls); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		if _, err := activeCollection(ctx, repos.Collections(), req.CollectionID); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		return repos.Collections().AdjustProductsCount(ctx, req.CollectionID, 1)
	})
	if err != nil {
		return nil, err
	}
	shared.PublishPending(ctx, s.eventPublisher, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product with its variants and their effective prices
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := s.ListVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductDetailResponse{
		ProductResponse: ToProductResponse(product),
		Variants:        variants,
	}, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.CollectionID != nil {
		domainFilter.Filters["collection_id"] = *filter.CollectionID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Gender != "" {
		domainFilter.Filters["gender"] = filter.Gender
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product. Moving it to another collection moves one unit of
// product count from the old collection to the new one in the same transaction.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		product, err = repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot update a deleted product")
		}

		if err := product.Update(mergeAttributes(product, req)); err != nil {
			return err
		}

		if req.AvailableColors != nil || req.AvailableSizes != nil {
			colors := req.AvailableColors
			if colors == nil {
				colors = product.AvailableColors
			}
			sizes := req.AvailableSizes
			if sizes == nil {
				sizes = sizeStrings(product.AvailableSizes)
			}
			variants, err := repos.Variants().FindByProduct(ctx, product.ID)
			if err != nil {
				return err
			}
			keys := make([]catalog.VariantKey, len(variants))
			for i := range variants {
				keys[i] = variants[i].Key()
			}
			if err := product.SetAvailability(colors, sizes, keys); err != nil {
				return err
			}
		}

		for color, urls := range req.Images {
			if err := product.SetImages(color, urls); err != nil {
				return err
			}
		}

		if req.CollectionID != nil && *req.CollectionID != product.CollectionID {
			if _, err := activeCollection(ctx, repos.Collections(), *req.CollectionID); err != nil {
				return err
			}
			previous, err := product.MoveToCollection(*req.CollectionID)
			if err != nil {
				return err
			}
			if err := repos.Collections().AdjustProductsCount(ctx, previous, -1); err != nil {
				return err
			}
			if err := repos.Collections().AdjustProductsCount(ctx, product.CollectionID, 1); err != nil {
				return err
			}
		}

		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	shared.PublishPending(ctx, s.eventPublisher, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product. Its variants are removed and its collection's
// product count drops by one, all in the same transaction.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos uow.TransactionalRepositories) error {
		var err error
		product, err = repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := product.Deactivate(); err != nil {
			return err
		}
		if _, err := repos.Variants().DeleteByProduct(ctx, product.ID); err != nil {
			return err
		}
		if err := repos.Collections().AdjustProductsCount(ctx, product.CollectionID, -1); err != nil {
			return err
		}
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return err
	}
	shared.PublishPending(ctx, s.eventPublisher, product)
	return nil
}

// UpsertVariants applies a batch of variants to a product. Each entry is
// validated and written on its own; entries already applied stay applied when
// a later entry fails. The result lists the outcome of every entry.
func (s *ProductService) UpsertVariants(ctx context.Context, productID uuid.UUID, req UpsertVariantsRequest) (*UpsertVariantsResult, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot add variants to a deleted product")
	}

	result := &UpsertVariantsResult{
		ProductID: productID,
		Results:   make([]VariantResult, 0, len(req.Variants)),
	}
	for i, in := range req.Variants {
		entry := VariantResult{Index: i, Size: in.Size, Color: in.Color}

		variant, err := catalog.NewVariant(product, in.Size, in.Color, in.Quantity, in.Price)
		if err == nil {
			err = s.variantRepo.Upsert(ctx, variant)
		}
		if err != nil {
			entry.Code, entry.Message = errorDetail(err)
			result.Failed++
		} else {
			resp := toVariantResponse(variant, nil, time.Time{})
			entry.Applied = true
			entry.Size = variant.Size.String()
			entry.Color = variant.Color
			entry.Variant = &resp
			result.Applied++
		}
		result.Results = append(result.Results, entry)
	}
	return result, nil
}

// ListVariants lists the variants of a product with the best running discount applied
func (s *ProductService) ListVariants(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	variants, err := s.variantRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var discounts []promotion.Discount
	if s.discountRepo != nil && len(variants) > 0 {
		discounts, err = s.discountRepo.FindRunning(ctx, now)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]VariantResponse, len(variants))
	for i := range variants {
		responses[i] = toVariantResponse(&variants[i], discounts, now)
	}
	return responses, nil
}

func toVariantResponse(v *catalog.Variant, discounts []promotion.Discount, now time.Time) VariantResponse {
	resp := VariantResponse{
		ID:             v.ID,
		ProductID:      v.ProductID,
		Size:           v.Size.String(),
		Color:          v.Color,
		Quantity:       v.Quantity,
		Price:          v.Price,
		EffectivePrice: v.Price,
		UpdatedAt:      v.UpdatedAt,
	}
	if price, best := promotion.EffectivePrice(discounts, v.ProductID, v.Price, now); best != nil {
		pct := best.Percent
		id := best.ID
		resp.EffectivePrice = price
		resp.DiscountID = &id
		resp.DiscountPct = &pct
	}
	return resp
}

func activeCollection(ctx context.Context, repo catalog.CollectionRepository, id uuid.UUID) (*catalog.Collection, error) {
	collection, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COLLECTION_NOT_FOUND", "Collection not found")
		}
		return nil, err
	}
	if !collection.IsActive {
		return nil, shared.NewDomainError("COLLECTION_INACTIVE", "Collection has been deleted")
	}
	return collection, nil
}

func mergeAttributes(p *catalog.Product, req UpdateProductRequest) catalog.ProductAttributes {
	attrs := catalog.ProductAttributes{
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		Gender:      p.Gender,
		Activity:    p.Activity,
	}
	if req.Name != nil {
		attrs.Name = *req.Name
	}
	if req.Description != nil {
		attrs.Description = *req.Description
	}
	if req.Type != nil {
		attrs.Type = catalog.ProductType(*req.Type)
	}
	if req.Gender != nil {
		attrs.Gender = catalog.Gender(*req.Gender)
	}
	if req.Activity != nil {
		attrs.Activity = *req.Activity
	}
	return attrs
}

func sizeStrings(sizes []catalog.Size) []string {
	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = s.String()
	}
	return out
}

// errorDetail extracts a code and a caller-safe message from err
func errorDetail(err error) (string, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, domainErr.Message
	}
	return "INTERNAL_ERROR", "Failed to save variant"
}
