package persistence

import (
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockable is embedded by the aggregate repositories. Repositories handed out
// by a transaction scope lock the rows they read until the transaction ends.
type lockable struct {
	lock bool
}

// forUpdate adds FOR UPDATE to a single read. It must not reach counts or
// aggregates, which PostgreSQL refuses to lock.
func (l lockable) forUpdate(db *gorm.DB) *gorm.DB {
	if !l.lock {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// saveAggregate inserts an aggregate that was never stored and otherwise
// updates its row under the version guard.
func saveAggregate(db *gorm.DB, root *shared.BaseAggregateRoot, model any, omit ...string) error {
	if root.StoredVersion() == 0 {
		return insertAggregate(db, root, model, omit...)
	}
	return updateAggregate(db, root, model, omit...)
}

func insertAggregate(db *gorm.DB, root *shared.BaseAggregateRoot, model any, omit ...string) error {
	if err := db.Omit(omit...).Create(model).Error; err != nil {
		return err
	}
	root.MarkStored()
	return nil
}

// updateAggregate overwrites the row only while it still carries the version
// root was read at. A row that moved on or disappeared is a conflict, and the
// caller's copy stays marked with the old version.
// Associations are never written on update.
func updateAggregate(db *gorm.DB, root *shared.BaseAggregateRoot, model any, omit ...string) error {
	omit = append([]string{"id", "created_at", clause.Associations}, omit...)
	result := db.Model(model).
		Select("*").
		Omit(omit...).
		Where("version = ?", root.StoredVersion()).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	root.MarkStored()
	return nil
}
