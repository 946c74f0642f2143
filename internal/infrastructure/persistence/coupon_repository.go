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
	"gorm.io/gorm/clause"
)

// GormCouponRepository implements CouponRepository using GORM
type GormCouponRepository struct {
	lockable
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by its ID together with its usage ledger
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	var model models.CouponModel
	if err := r.forUpdate(r.db.WithContext(ctx)).
		Preload("Usages", func(db *gorm.DB) *gorm.DB {
			return db.Order("used_at ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a coupon by its code. The ledger is not loaded.
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*promotion.Coupon, error) {
	var model models.CouponModel
	if err := r.forUpdate(r.db.WithContext(ctx)).
		Where("code = ?", promotion.NormalizeCouponCode(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all coupons matching the filter
func (r *GormCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.Coupon, error) {
	var couponModels []models.CouponModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CouponModel{}), filter)

	if err := query.Find(&couponModels).Error; err != nil {
		return nil, err
	}

	coupons := make([]promotion.Coupon, len(couponModels))
	for i, model := range couponModels {
		coupons[i] = *model.ToDomain()
	}
	return coupons, nil
}

// Count counts coupons matching the filter
func (r *GormCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CouponModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a coupon with the given code exists
func (r *GormCouponRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CouponModel{}).Where("code = ?", promotion.NormalizeCouponCode(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a coupon. The usage counter and ledger are owned by
// RecordUsage, so an update only applies while the stored usage still fits
// under the new cap.
func (r *GormCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	model := models.CouponModelFromDomain(coupon)
	db := r.db.WithContext(ctx)
	if coupon.StoredVersion() == 0 {
		return insertAggregate(db, &coupon.BaseAggregateRoot, model, "used_count", clause.Associations)
	}

	err := updateAggregate(db.Where("used_count <= ?", coupon.MaxUsage), &coupon.BaseAggregateRoot, model, "used_count")
	if !errors.Is(err, shared.ErrConcurrencyConflict) {
		return err
	}
	var stored models.CouponModel
	if err := db.Select("used_count").First(&stored, "id = ?", coupon.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	if stored.UsedCount > coupon.MaxUsage {
		return promotion.NewMaxUsageError(stored.UsedCount)
	}
	return shared.ErrConcurrencyConflict
}

// RecordUsage bumps the usage counter while it is below the cap and appends the ledger row
func (r *GormCouponRepository) RecordUsage(ctx context.Context, usage promotion.CouponUsage) error {
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}
	db := r.db.WithContext(ctx)

	result := db.Model(&models.CouponModel{}).
		Where("id = ? AND used_count < max_usage", usage.CouponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.CouponModel{}).Where("id = ?", usage.CouponID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return promotion.ErrCouponExhausted
	}

	return db.Create(models.CouponUsageModelFromDomain(usage)).Error
}

func (r *GormCouponRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return couponSort.apply(query, filter)
}

func (r *GormCouponRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormCouponRepository implements CouponRepository
var _ promotion.CouponRepository = (*GormCouponRepository)(nil)
