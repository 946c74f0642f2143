package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiscountRepository implements DiscountRepository using GORM
type GormDiscountRepository struct {
	lockable
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by its ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Discount, error) {
	var model models.DiscountModel
	if err := r.forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all discounts matching the filter
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.Discount, error) {
	var discountModels []models.DiscountModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DiscountModel{}), filter)

	if err := query.Find(&discountModels).Error; err != nil {
		return nil, err
	}
	return toDiscounts(discountModels), nil
}

// Count counts discounts matching the filter
func (r *GormDiscountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DiscountModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRunning returns the active discounts whose window contains at, oldest first
func (r *GormDiscountRepository) FindRunning(ctx context.Context, at time.Time) ([]promotion.Discount, error) {
	var discountModels []models.DiscountModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date > ?", true, at, at).
		Order("created_at ASC").
		Find(&discountModels).Error; err != nil {
		return nil, err
	}
	return toDiscounts(discountModels), nil
}

// Save creates a discount or updates it under the version guard
func (r *GormDiscountRepository) Save(ctx context.Context, discount *promotion.Discount) error {
	model := models.DiscountModelFromDomain(discount)
	return saveAggregate(r.db.WithContext(ctx), &discount.BaseAggregateRoot, model)
}

func (r *GormDiscountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return discountSort.apply(query, filter)
}

func (r *GormDiscountRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

func toDiscounts(discountModels []models.DiscountModel) []promotion.Discount {
	discounts := make([]promotion.Discount, len(discountModels))
	for i, model := range discountModels {
		discounts[i] = *model.ToDomain()
	}
	return discounts
}

// Ensure GormDiscountRepository implements DiscountRepository
var _ promotion.DiscountRepository = (*GormDiscountRepository)(nil)
