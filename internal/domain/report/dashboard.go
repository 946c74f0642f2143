package report

import (
	"context"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Period selects the trailing window of the order statistics
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// AllPeriods lists every period the dashboard can report on
func AllPeriods() []Period {
	return []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodAll}
}

// Top products limits
const (
	DefaultTopProductsLimit = 10
	MaxTopProductsLimit     = 50
)

// ParsePeriod parses a period name. Empty input selects the week.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodWeek, nil
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	}
	return "", shared.NewDomainError("INVALID_PERIOD", "Period must be one of day, week, month, all")
}

// Since returns the start of the window ending at now.
// day starts at local midnight, week is the trailing 7 days, month starts on the 1st.
// The zero time means unbounded.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}

// StatusBreakdown is the order count and revenue of one status
type StatusBreakdown struct {
	Status  string          `json:"status"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyOrders is one point of the daily series
type DailyOrders struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// OrderTotals summarises the window
type OrderTotals struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// OrderStats is the dashboard read model for a period
type OrderStats struct {
	Period         Period            `json:"period"`
	Since          *time.Time        `json:"since,omitempty"`
	OrdersByStatus []StatusBreakdown `json:"orders_by_status"`
	DailyOrders    []DailyOrders     `json:"daily_orders"`
	Totals         OrderTotals       `json:"totals"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// TopProduct is a best seller grouped by product name
type TopProduct struct {
	Rank         int             `json:"rank"`
	ProductName  string          `json:"product_name"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// Overview counts the directory and catalog for the dashboard header
type Overview struct {
	ActiveProducts    int64 `json:"active_products"`
	ActiveCollections int64 `json:"active_collections"`
	ActiveCustomers   int64 `json:"active_customers"`
	PendingOrders     int64 `json:"pending_orders"`
	RunningDiscounts  int64 `json:"running_discounts"`
}

// DashboardRepository runs the aggregation queries behind the dashboard.
// Cancelled orders appear in the status breakdown only.
type DashboardRepository interface {
	// OrdersByStatus groups orders created at or after since by status
	OrdersByStatus(ctx context.Context, since time.Time) ([]StatusBreakdown, error)

	// DailyOrders groups non-cancelled orders created at or after since by calendar day, oldest first
	DailyOrders(ctx context.Context, since time.Time) ([]DailyOrders, error)

	// Totals returns count, revenue and average over non-cancelled orders created at or after since
	Totals(ctx context.Context, since time.Time) (OrderTotals, error)

	// TopProducts ranks line items of non-cancelled orders by quantity sold, then product name
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)

	// Overview counts active catalog and directory rows at now
	Overview(ctx context.Context, now time.Time) (Overview, error)
}

// ClampTopProductsLimit applies the default and the maximum to a requested limit
func ClampTopProductsLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopProductsLimit
	}
	if limit > MaxTopProductsLimit {
		return MaxTopProductsLimit
	}
	return limit
}
