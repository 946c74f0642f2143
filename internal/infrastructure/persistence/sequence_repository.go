package persistence

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements SequenceRepository on the sequences table
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments the named counter and returns its new value.
// The counter row is created on first use.
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := r.db.WithContext(ctx)

	value, ok, err := r.increment(db, name)
	if err != nil {
		return 0, err
	}
	if ok {
		return value, nil
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.SequenceModel{Name: name, Value: 0}).Error; err != nil {
		return 0, err
	}

	value, _, err = r.increment(db, name)
	return value, err
}

func (r *GormSequenceRepository) increment(db *gorm.DB, name string) (int64, bool, error) {
	var seq models.SequenceModel
	result := db.Model(&seq).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "value"}}}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return seq.Value, true, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ trade.SequenceRepository = (*GormSequenceRepository)(nil)
