package persistence

import (
	"context"
	"errors"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCollectionRepository implements CollectionRepository using GORM
type GormCollectionRepository struct {
	lockable
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// FindByID finds a collection by its ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	var model models.CollectionModel
	if err := r.forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all collections matching the filter
func (r *GormCollectionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Collection, error) {
	var collectionModels []models.CollectionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter)

	if err := query.Find(&collectionModels).Error; err != nil {
		return nil, err
	}

	collections := make([]catalog.Collection, len(collectionModels))
	for i, model := range collectionModels {
		collections[i] = *model.ToDomain()
	}
	return collections, nil
}

// Count counts collections matching the filter
func (r *GormCollectionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CollectionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a collection with the given name exists, case-insensitively
func (r *GormCollectionRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CollectionModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a collection. The product count is owned by
// AdjustProductsCount, so an update that deactivates the collection only
// applies while the stored count is still zero.
func (r *GormCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	model := models.CollectionModelFromDomain(collection)
	db := r.db.WithContext(ctx)
	if collection.StoredVersion() == 0 {
		return insertAggregate(db, &collection.BaseAggregateRoot, model, "products_count")
	}
	if collection.IsActive {
		return updateAggregate(db, &collection.BaseAggregateRoot, model, "products_count")
	}

	err := updateAggregate(db.Where("products_count = 0"), &collection.BaseAggregateRoot, model, "products_count")
	if !errors.Is(err, shared.ErrConcurrencyConflict) {
		return err
	}
	var stored models.CollectionModel
	if err := db.Select("products_count").First(&stored, "id = ?", collection.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	if stored.ProductsCount > 0 {
		return catalog.ErrCollectionHasProducts
	}
	return shared.ErrConcurrencyConflict
}

// AdjustProductsCount adds delta to the product count, clamping at zero
func (r *GormCollectionRepository) AdjustProductsCount(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.CollectionModel{}).
		Where("id = ?", id).
		UpdateColumn("products_count",
			gorm.Expr("CASE WHEN products_count + ? < 0 THEN 0 ELSE products_count + ? END", delta, delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCollectionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return collectionSort.apply(query, filter)
}

func (r *GormCollectionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

// Ensure GormCollectionRepository implements CollectionRepository
var _ catalog.CollectionRepository = (*GormCollectionRepository)(nil)
