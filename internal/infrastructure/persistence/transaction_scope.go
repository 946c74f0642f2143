package persistence

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/application/uow"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos uow.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
// Aggregates read through them stay locked until it commits.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Collections() catalog.CollectionRepository {
	repo := NewGormCollectionRepository(r.tx)
	repo.lock = true
	return repo
}

func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	repo := NewGormProductRepository(r.tx)
	repo.lock = true
	return repo
}

func (r *gormTransactionalRepositories) Variants() catalog.VariantRepository {
	return NewGormVariantRepository(r.tx)
}

func (r *gormTransactionalRepositories) Orders() trade.OrderRepository {
	repo := NewGormOrderRepository(r.tx)
	repo.lock = true
	return repo
}

func (r *gormTransactionalRepositories) Packages() trade.PackageRepository {
	repo := NewGormPackageRepository(r.tx)
	repo.lock = true
	return repo
}

func (r *gormTransactionalRepositories) Sequences() trade.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

func (r *gormTransactionalRepositories) Coupons() promotion.CouponRepository {
	repo := NewGormCouponRepository(r.tx)
	repo.lock = true
	return repo
}

func (r *gormTransactionalRepositories) Customers() partner.CustomerRepository {
	repo := NewGormCustomerRepository(r.tx)
	repo.lock = true
	return repo
}

// Ensure GormTransactionScope implements TransactionScope
var _ uow.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ uow.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
