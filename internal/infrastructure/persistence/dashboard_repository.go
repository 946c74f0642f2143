package persistence

import (
	"context"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository runs the dashboard aggregations with GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

type statusRow struct {
	Status  string
	Count   int64
	Revenue decimal.Decimal
}

type dailyRow struct {
	OrderDay string
	Count    int64
	Revenue  decimal.Decimal
}

type totalsRow struct {
	Count   int64
	Revenue decimal.Decimal
}

type topProductRow struct {
	ProductName  string
	TotalSold    int64
	TotalRevenue decimal.Decimal
}

// OrdersByStatus groups orders by status, cancelled ones included
func (r *GormDashboardRepository) OrdersByStatus(ctx context.Context, since time.Time) ([]report.StatusBreakdown, error) {
	var rows []statusRow
	query := r.orders(ctx, since).
		Select("status, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
		Group("status").
		Order("status ASC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.StatusBreakdown, len(rows))
	for i, row := range rows {
		result[i] = report.StatusBreakdown{Status: row.Status, Count: row.Count, Revenue: row.Revenue}
	}
	return result, nil
}

// DailyOrders groups non-cancelled orders by calendar day, oldest first
func (r *GormDashboardRepository) DailyOrders(ctx context.Context, since time.Time) ([]report.DailyOrders, error) {
	day := r.dayExpression()
	var rows []dailyRow
	query := r.orders(ctx, since).
		Where("status <> ?", string(trade.OrderStatusCancelled)).
		Select(day + " AS order_day, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
		Group(day).
		Order("order_day ASC")
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.DailyOrders, len(rows))
	for i, row := range rows {
		result[i] = report.DailyOrders{Date: row.OrderDay, Count: row.Count, Revenue: row.Revenue}
	}
	return result, nil
}

// Totals returns count, revenue and average order value over non-cancelled orders
func (r *GormDashboardRepository) Totals(ctx context.Context, since time.Time) (report.OrderTotals, error) {
	var row totalsRow
	query := r.orders(ctx, since).
		Where("status <> ?", string(trade.OrderStatusCancelled)).
		Select("COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue")
	if err := query.Scan(&row).Error; err != nil {
		return report.OrderTotals{}, err
	}

	totals := report.OrderTotals{
		TotalOrders:       row.Count,
		TotalRevenue:      row.Revenue,
		AverageOrderValue: decimal.Zero,
	}
	if row.Count > 0 {
		totals.AverageOrderValue = row.Revenue.Div(decimal.NewFromInt(row.Count)).Round(2)
	}
	return totals, nil
}

// TopProducts ranks products by units sold across non-cancelled orders
func (r *GormDashboardRepository) TopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	limit = report.ClampTopProductsLimit(limit)

	var rows []topProductRow
	query := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Joins("JOIN orders AS o ON o.id = oi.order_id").
		Where("o.status <> ?", string(trade.OrderStatusCancelled)).
		Select("oi.product_name AS product_name, SUM(oi.quantity) AS total_sold, COALESCE(SUM(oi.amount), 0) AS total_revenue").
		Group("oi.product_name").
		Order("total_sold DESC").
		Order("product_name ASC").
		Limit(limit)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.TopProduct, len(rows))
	for i, row := range rows {
		result[i] = report.TopProduct{
			Rank:         i + 1,
			ProductName:  row.ProductName,
			TotalSold:    row.TotalSold,
			TotalRevenue: row.TotalRevenue,
		}
	}
	return result, nil
}

// Overview counts active catalog and directory rows
func (r *GormDashboardRepository) Overview(ctx context.Context, now time.Time) (report.Overview, error) {
	var overview report.Overview
	db := r.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&overview.ActiveProducts, db.Model(&models.ProductModel{}).Where("is_active = ?", true)},
		{&overview.ActiveCollections, db.Model(&models.CollectionModel{}).Where("is_active = ?", true)},
		{&overview.ActiveCustomers, db.Model(&models.CustomerModel{}).
			Where("is_active = ? AND role = ?", true, identity.RoleCustomer.String())},
		{&overview.PendingOrders, db.Model(&models.OrderModel{}).
			Where("status = ?", string(trade.OrderStatusPending))},
		{&overview.RunningDiscounts, db.Model(&models.DiscountModel{}).
			Where("is_active = ? AND start_date <= ? AND end_date > ?", true, now, now)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return report.Overview{}, err
		}
	}
	return overview, nil
}

// orders scopes a query to orders created at or after since. The zero time is unbounded.
func (r *GormDashboardRepository) orders(ctx context.Context, since time.Time) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	return query
}

// dayExpression renders created_at as YYYY-MM-DD in the connected dialect
func (r *GormDashboardRepository) dayExpression() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', created_at)"
	}
	return "TO_CHAR(created_at, 'YYYY-MM-DD')"
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
