package uow

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
)

// TransactionScope runs work that spans several aggregates atomically.
// All repositories handed to fn share one database transaction, which is
// committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction
type TransactionalRepositories interface {
	Collections() catalog.CollectionRepository
	Products() catalog.ProductRepository
	Variants() catalog.VariantRepository
	Orders() trade.OrderRepository
	Packages() trade.PackageRepository
	Sequences() trade.SequenceRepository
	Coupons() promotion.CouponRepository
	Customers() partner.CustomerRepository
}

// Repositories is a plain set of repositories
type Repositories struct {
	CollectionRepo catalog.CollectionRepository
	ProductRepo    catalog.ProductRepository
	VariantRepo    catalog.VariantRepository
	OrderRepo      trade.OrderRepository
	PackageRepo    trade.PackageRepository
	SequenceRepo   trade.SequenceRepository
	CouponRepo     promotion.CouponRepository
	CustomerRepo   partner.CustomerRepository
}

func (r *Repositories) Collections() catalog.CollectionRepository { return r.CollectionRepo }
func (r *Repositories) Products() catalog.ProductRepository       { return r.ProductRepo }
func (r *Repositories) Variants() catalog.VariantRepository       { return r.VariantRepo }
func (r *Repositories) Orders() trade.OrderRepository             { return r.OrderRepo }
func (r *Repositories) Packages() trade.PackageRepository         { return r.PackageRepo }
func (r *Repositories) Sequences() trade.SequenceRepository       { return r.SequenceRepo }
func (r *Repositories) Coupons() promotion.CouponRepository       { return r.CouponRepo }
func (r *Repositories) Customers() partner.CustomerRepository     { return r.CustomerRepo }

// NoOpTransactionScope runs fn against fixed repositories without a transaction.
// Used in tests.
type NoOpTransactionScope struct {
	repos *Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over repos
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: &repos}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*Repositories)(nil)
)
