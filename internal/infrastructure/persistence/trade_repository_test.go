package persistence

import (
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := t.Context()

	fx := seedCatalog(t, db, "Trail Runner Tee", 10, 799)
	customer := seedCustomer(t, db, "Meera Iyer", "meera@example.com", "9876543210")

	order := newTestOrder(t, "ORD1700000000123001", customer, fx, 2)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByNumber(ctx, "ORD1700000000123001")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, trade.OrderStatusPending, found.Status)
	assert.Equal(t, trade.PaymentMethodUPI, found.PaymentMethod)
	assert.True(t, found.TotalMRP.Equal(decimal.NewFromInt(1598)))
	assert.True(t, found.FinalAmount.Equal(decimal.NewFromInt(1598)))
	assert.Equal(t, "Bengaluru", found.ShippingAddress.City())
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Trail Runner Tee", found.Items[0].ProductName)
	assert.Equal(t, fx.variant.ID, found.Items[0].VariantID)
	assert.Equal(t, "M", found.Items[0].Size)
	assert.Equal(t, 2, found.Items[0].Quantity)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("updating the status leaves line items untouched", func(t *testing.T) {
		require.NoError(t, order.UpdateStatus(trade.OrderStatusConfirmed, ""))
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusConfirmed, found.Status)
		assert.NotNil(t, found.ConfirmedAt)
		assert.Len(t, found.Items, 1)

		var items int64
		require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).Count(&items).Error)
		assert.Equal(t, int64(1), items)
	})
}

func TestGormOrderRepository_SaveStaleCopy(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := t.Context()

	fx := seedCatalog(t, db, "Trail Runner Tee", 10, 799)
	customer := seedCustomer(t, db, "Meera Iyer", "meera@example.com", "9876543210")
	order := newTestOrder(t, "ORD-1", customer, fx, 1)
	require.NoError(t, repo.Save(ctx, order))

	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, first.Cancel("ordered twice"))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.UpdateStatus(trade.OrderStatusConfirmed, ""))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCancelled, found.Status)
	assert.Equal(t, first.Version, found.Version)

	t.Run("a fresh copy saves", func(t *testing.T) {
		require.NoError(t, found.SetPaymentStatus(trade.PaymentStatusRefunded))
		require.NoError(t, repo.Save(ctx, found))
		require.NoError(t, repo.Save(ctx, found))
	})
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := t.Context()

	fx := seedCatalog(t, db, "Trail Runner Tee", 10, 799)
	meera := seedCustomer(t, db, "Meera Iyer", "meera@example.com", "9876543210")
	arjun := seedCustomer(t, db, "Arjun Rao", "arjun@example.com", "9123456780")
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	first := at(newTestOrder(t, "ORD-1", meera, fx, 1), base)
	second := at(newTestOrder(t, "ORD-2", arjun, fx, 1), base.Add(24*time.Hour))
	third := at(newTestOrder(t, "ORD-3", meera, fx, 1), base.Add(48*time.Hour))
	require.NoError(t, third.Cancel("changed my mind"))
	for _, o := range []*trade.Order{first, second, third} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("sorted by creation time", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{OrderBy: "created_at", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, third.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[2].ID)
	})

	t.Run("by customer and status", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{
			"customer_id": meera.ID,
			"status":      string(trade.OrderStatusPending),
		}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("by date range", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Filters: map[string]any{
			"from": base.Add(12 * time.Hour),
			"to":   base.Add(36 * time.Hour),
		}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("search matches customer name", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Search: "arjun"})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, second.ID, orders[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		orders, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2, OrderBy: "created_at", OrderDir: "asc"})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, third.ID, orders[0].ID)
	})

	t.Run("by ids", func(t *testing.T) {
		orders, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})
}

func confirmedOrder(t *testing.T, repo *GormOrderRepository, number string, customer *partner.Customer, fx catalogFixture) *trade.Order {
	t.Helper()
	order := newTestOrder(t, number, customer, fx, 1)
	require.NoError(t, order.UpdateStatus(trade.OrderStatusConfirmed, ""))
	require.NoError(t, repo.Save(t.Context(), order))
	return order
}

func TestGormPackageRepository_Save(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPackageRepository(db)
	orders := NewGormOrderRepository(db)
	ctx := t.Context()

	fx := seedCatalog(t, db, "Trail Runner Tee", 10, 799)
	customer := seedCustomer(t, db, "Meera Iyer", "meera@example.com", "9876543210")
	a := confirmedOrder(t, orders, "ORD-1", customer, fx)
	b := confirmedOrder(t, orders, "ORD-2", customer, fx)
	c := confirmedOrder(t, orders, "ORD-3", customer, fx)

	pkg, err := trade.NewPackage("PKG-1", []*trade.Order{a, b}, trade.ShipmentDetails{
		CourierService: "BlueDart",
		Weight:         decimal.RequireFromString("1.250"),
		Dimensions:     trade.Dimensions{Length: decimal.NewFromInt(30), Width: decimal.NewFromInt(20), Height: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pkg))

	found, err := repo.FindByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "PKG-1", found.PackageNumber)
	assert.Equal(t, trade.PackageStatusPacked, found.Status)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, found.OrderIDs)
	assert.True(t, found.Weight.Equal(decimal.RequireFromString("1.25")))

	t.Run("reports packaged orders", func(t *testing.T) {
		packaged, err := repo.FindPackagedOrderIDs(ctx, []uuid.UUID{a.ID, c.ID})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID}, packaged)

		none, err := repo.FindPackagedOrderIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("an order cannot join a second package", func(t *testing.T) {
		again, err := trade.NewPackage("PKG-2", []*trade.Order{b, c}, trade.ShipmentDetails{})
		require.NoError(t, err)

		err = repo.Save(ctx, again)
		assert.ErrorIs(t, err, ErrOrderAlreadyPackaged)
	})

	t.Run("status updates keep the assignments", func(t *testing.T) {
		require.NoError(t, pkg.UpdateStatus(trade.PackageStatusShipped, "BD123456789IN"))
		require.NoError(t, repo.Save(ctx, pkg))

		found, err := repo.FindByID(ctx, pkg.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.PackageStatusShipped, found.Status)
		assert.Equal(t, "BD123456789IN", found.TrackingID)
		assert.Len(t, found.OrderIDs, 2)

		exists, err := repo.ExistsByTrackingID(ctx, "BD123456789IN", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByTrackingID(ctx, "BD123456789IN", &pkg.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list by status", func(t *testing.T) {
		packages, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{"status": "shipped"}})
		require.NoError(t, err)
		require.Len(t, packages, 1)
		assert.Equal(t, pkg.ID, packages[0].ID)
	})
}

func TestGormSequenceRepository_Next(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := t.Context()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, trade.SequenceOrder)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := repo.Next(ctx, trade.SequencePackage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "counters are independent")
}
