package persistence

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	var model models.VariantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct lists the variants of a product, smallest size first
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	var variantModels []models.VariantModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("color ASC").
		Find(&variantModels).Error; err != nil {
		return nil, err
	}

	variants := make([]catalog.Variant, len(variantModels))
	for i, model := range variantModels {
		variants[i] = *model.ToDomain()
	}
	// sizes do not sort alphabetically
	slices.SortStableFunc(variants, func(a, b catalog.Variant) int {
		switch {
		case a.Size.Less(b.Size):
			return -1
		case b.Size.Less(a.Size):
			return 1
		}
		return strings.Compare(a.Color, b.Color)
	})
	return variants, nil
}

// Upsert inserts the variant or refreshes quantity and price of the existing
// (product, size, color) row, then copies the stored row back into v
func (r *GormVariantRepository) Upsert(ctx context.Context, v *catalog.Variant) error {
	model := models.VariantModelFromDomain(v)
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "size"}, {Name: "color"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return err
	}

	var stored models.VariantModel
	if err := db.
		Where("product_id = ? AND size = ? AND color = ?", v.ProductID, v.Size.String(), v.Color).
		First(&stored).Error; err != nil {
		return err
	}
	*v = *stored.ToDomain()
	return nil
}

// DeleteByProduct removes every variant of a product
func (r *GormVariantRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.VariantModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecrementStock takes quantity units out of stock in a single guarded update
func (r *GormVariantRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// IncrementStock returns quantity units to stock
func (r *GormVariantRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&models.VariantModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
