package persistence

import (
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type catalogFixture struct {
	collection *catalog.Collection
	product    *catalog.Product
	variant    *catalog.Variant
}

// seedCatalog stores a collection holding one product with a single (M, black) variant
func seedCatalog(t *testing.T, db *gorm.DB, productName string, stock int, price int64) catalogFixture {
	t.Helper()
	ctx := t.Context()

	collection, err := catalog.NewCollection(productName+" Collection", "", "")
	require.NoError(t, err)
	require.NoError(t, NewGormCollectionRepository(db).Save(ctx, collection))

	product, err := catalog.NewProduct(collection.ID, catalog.ProductAttributes{
		Name:     productName,
		Type:     catalog.ProductTypeTop,
		Gender:   catalog.GenderUnisex,
		Activity: "running",
	}, []string{"black", "white"}, []string{"S", "M", "L"})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(ctx, product))

	variant, err := catalog.NewVariant(product, "M", "black", stock, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, NewGormVariantRepository(db).Upsert(ctx, variant))

	return catalogFixture{collection: collection, product: product, variant: variant}
}

func seedCustomer(t *testing.T, db *gorm.DB, name, email, mobile string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(name, email, mobile, identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db).Save(t.Context(), customer))
	return customer
}

// newTestOrder builds a pending order for quantity units of the fixture variant
func newTestOrder(t *testing.T, number string, customer *partner.Customer, fx catalogFixture, quantity int) *trade.Order {
	t.Helper()
	item, err := trade.NewLineItem(fx.product, fx.variant, quantity)
	require.NoError(t, err)

	order, err := trade.NewOrder(trade.OrderDraft{
		OrderNumber:     number,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		Items:           []trade.LineItem{item},
		ShippingAddress: valueobject.MustNewAddress("12 MG Road", "Indiranagar", "Bengaluru", "560038"),
		PaymentMethod:   trade.PaymentMethodUPI,
	})
	require.NoError(t, err)
	return order
}

// at pins an order's creation time so date aggregations are deterministic
func at(order *trade.Order, created time.Time) *trade.Order {
	order.CreatedAt = created
	order.UpdatedAt = created
	return order
}
