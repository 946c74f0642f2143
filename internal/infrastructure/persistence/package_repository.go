package persistence

import (
	"context"
	"errors"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderAlreadyPackaged is returned when a concurrent package claimed one of the orders first
var ErrOrderAlreadyPackaged = shared.NewDomainError("ORDER_ALREADY_PACKAGED", "One or more orders are already packaged")

// GormPackageRepository implements PackageRepository using GORM
type GormPackageRepository struct {
	lockable
	db *gorm.DB
}

// NewGormPackageRepository creates a new GormPackageRepository
func NewGormPackageRepository(db *gorm.DB) *GormPackageRepository {
	return &GormPackageRepository{db: db}
}

// FindByID finds a package by its ID
func (r *GormPackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Package, error) {
	var model models.PackageModel
	if err := r.forUpdate(r.db.WithContext(ctx)).Preload("Orders").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all packages matching the filter
func (r *GormPackageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Package, error) {
	var packageModels []models.PackageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PackageModel{}).Preload("Orders"), filter)

	if err := query.Find(&packageModels).Error; err != nil {
		return nil, err
	}

	packages := make([]trade.Package, len(packageModels))
	for i, model := range packageModels {
		packages[i] = *model.ToDomain()
	}
	return packages, nil
}

// Count counts packages matching the filter
func (r *GormPackageRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PackageModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPackagedOrderIDs returns the orders among orderIDs that already belong to a package
func (r *GormPackageRepository) FindPackagedOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]uuid.UUID, error) {
	packaged := make([]uuid.UUID, 0)
	if len(orderIDs) == 0 {
		return packaged, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PackageOrderModel{}).
		Where("order_id IN ?", orderIDs).
		Pluck("order_id", &packaged).Error; err != nil {
		return nil, err
	}
	return packaged, nil
}

// ExistsByTrackingID checks if a package with the given tracking id exists
func (r *GormPackageRepository) ExistsByTrackingID(ctx context.Context, trackingID string, excludeID *uuid.UUID) (bool, error) {
	if trackingID == "" {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PackageModel{}).Where("tracking_id = ?", trackingID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a package with its order assignments, or updates the package row of an
// existing one under the version guard
func (r *GormPackageRepository) Save(ctx context.Context, pkg *trade.Package) error {
	model := models.PackageModelFromDomain(pkg)
	db := r.db.WithContext(ctx)

	if pkg.StoredVersion() > 0 {
		return updateAggregate(db, &pkg.BaseAggregateRoot, model)
	}
	if err := insertAggregate(db, &pkg.BaseAggregateRoot, model, clause.Associations); err != nil {
		return err
	}
	if len(model.Orders) == 0 {
		return nil
	}
	if err := db.Create(&model.Orders).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrOrderAlreadyPackaged
		}
		return err
	}
	return nil
}

func (r *GormPackageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return packageSort.apply(query, filter)
}

func (r *GormPackageRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(package_number) LIKE ? OR LOWER(tracking_id) LIKE ? OR LOWER(courier_service) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormPackageRepository implements PackageRepository
var _ trade.PackageRepository = (*GormPackageRepository)(nil)
