package persistence

import (
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dashboardDay = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// seedDashboard places three live orders over two days and one cancelled order
func seedDashboard(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := t.Context()
	orders := NewGormOrderRepository(db)

	tee := seedCatalog(t, db, "Trail Runner Tee", 20, 799)
	shorts := seedCatalog(t, db, "Court Shorts", 20, 599)
	customer := seedCustomer(t, db, "Meera Iyer", "meera@example.com", "9876543210")

	cancelled := at(newTestOrder(t, "ORD-4", customer, shorts, 5), dashboardDay.Add(25*time.Hour))
	require.NoError(t, cancelled.Cancel("duplicate"))

	for _, o := range []struct {
		number   string
		fx       catalogFixture
		quantity int
		created  time.Time
	}{
		{"ORD-1", tee, 2, dashboardDay},
		{"ORD-2", shorts, 1, dashboardDay.Add(2 * time.Hour)},
		{"ORD-3", tee, 1, dashboardDay.Add(24 * time.Hour)},
	} {
		require.NoError(t, orders.Save(ctx, at(newTestOrder(t, o.number, customer, o.fx, o.quantity), o.created)))
	}
	require.NoError(t, orders.Save(ctx, cancelled))
}

func TestGormDashboardRepository_OrdersByStatus(t *testing.T) {
	db := newTestDB(t)
	seedDashboard(t, db)
	repo := NewGormDashboardRepository(db)

	breakdown, err := repo.OrdersByStatus(t.Context(), time.Time{})
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "cancelled", breakdown[0].Status)
	assert.Equal(t, int64(1), breakdown[0].Count)
	assert.True(t, breakdown[0].Revenue.Equal(decimal.NewFromInt(2995)))

	assert.Equal(t, "pending", breakdown[1].Status)
	assert.Equal(t, int64(3), breakdown[1].Count)
	assert.True(t, breakdown[1].Revenue.Equal(decimal.NewFromInt(2996)))
}

func TestGormDashboardRepository_DailyOrders(t *testing.T) {
	db := newTestDB(t)
	seedDashboard(t, db)
	repo := NewGormDashboardRepository(db)

	daily, err := repo.DailyOrders(t.Context(), time.Time{})
	require.NoError(t, err)
	require.Len(t, daily, 2)

	assert.Equal(t, "2026-03-14", daily[0].Date)
	assert.Equal(t, int64(2), daily[0].Count)
	assert.True(t, daily[0].Revenue.Equal(decimal.NewFromInt(2197)))

	assert.Equal(t, "2026-03-15", daily[1].Date)
	assert.Equal(t, int64(1), daily[1].Count, "cancelled orders are left out")
	assert.True(t, daily[1].Revenue.Equal(decimal.NewFromInt(799)))
}

func TestGormDashboardRepository_Totals(t *testing.T) {
	db := newTestDB(t)
	seedDashboard(t, db)
	repo := NewGormDashboardRepository(db)

	totals, err := repo.Totals(t.Context(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.TotalOrders)
	assert.True(t, totals.TotalRevenue.Equal(decimal.NewFromInt(2996)))
	assert.Equal(t, "998.67", totals.AverageOrderValue.StringFixed(2))

	t.Run("window", func(t *testing.T) {
		totals, err := repo.Totals(t.Context(), dashboardDay.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), totals.TotalOrders)
		assert.True(t, totals.AverageOrderValue.Equal(decimal.NewFromInt(799)))
	})

	t.Run("empty window averages to zero", func(t *testing.T) {
		totals, err := repo.Totals(t.Context(), dashboardDay.Add(72*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, totals.TotalOrders)
		assert.True(t, totals.AverageOrderValue.IsZero())
	})
}

func TestGormDashboardRepository_TopProducts(t *testing.T) {
	db := newTestDB(t)
	seedDashboard(t, db)
	repo := NewGormDashboardRepository(db)

	top, err := repo.TopProducts(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, report.TopProduct{Rank: 1, ProductName: "Trail Runner Tee", TotalSold: 3, TotalRevenue: top[0].TotalRevenue}, top[0])
	assert.True(t, top[0].TotalRevenue.Equal(decimal.NewFromInt(2397)))
	assert.Equal(t, "Court Shorts", top[1].ProductName)
	assert.Equal(t, int64(1), top[1].TotalSold, "the cancelled order does not count")

	limited, err := repo.TopProducts(t.Context(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGormDashboardRepository_Overview(t *testing.T) {
	db := newTestDB(t)
	seedDashboard(t, db)
	repo := NewGormDashboardRepository(db)
	now := dashboardDay.Add(48 * time.Hour)

	discount, err := promotion.NewDiscount(promotion.DiscountTerms{
		Name:      "Spring Sale",
		Products:  []uuid.UUID{uuid.New()},
		Percent:   decimal.NewFromInt(10),
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, NewGormDiscountRepository(db).Save(t.Context(), discount))

	ended, err := promotion.NewDiscount(promotion.DiscountTerms{
		Name:      "Weekend Sale",
		Products:  []uuid.UUID{uuid.New()},
		Percent:   decimal.NewFromInt(15),
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now,
	})
	require.NoError(t, err)
	require.NoError(t, NewGormDiscountRepository(db).Save(t.Context(), ended))

	overview, err := repo.Overview(t.Context(), now)
	require.NoError(t, err)
	assert.Equal(t, report.Overview{
		ActiveProducts:    2,
		ActiveCollections: 2,
		ActiveCustomers:   1,
		PendingOrders:     3,
		RunningDiscounts:  1,
	}, overview)
}
