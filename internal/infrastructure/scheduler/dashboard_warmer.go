package scheduler

import (
	"context"
	"fmt"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
)

// DashboardRefresher recomputes dashboard views and overwrites their cache entries
type DashboardRefresher interface {
	RefreshOrderStats(ctx context.Context, periodName string) (*report.OrderStats, error)
	RefreshTopProducts(ctx context.Context, limit int) ([]report.TopProduct, error)
	RefreshOverview(ctx context.Context) (*report.Overview, error)
}

// DashboardWarmer executes warm-up jobs against the dashboard service
type DashboardWarmer struct {
	dashboard DashboardRefresher
}

// NewDashboardWarmer creates a new DashboardWarmer
func NewDashboardWarmer(dashboard DashboardRefresher) *DashboardWarmer {
	return &DashboardWarmer{dashboard: dashboard}
}

// Execute implements JobExecutor
func (w *DashboardWarmer) Execute(ctx context.Context, job *Job) error {
	var err error
	switch job.Kind {
	case JobKindOrderStats:
		_, err = w.dashboard.RefreshOrderStats(ctx, string(job.Period))
	case JobKindTopProducts:
		// The handler's default limit is the one worth keeping hot
		_, err = w.dashboard.RefreshTopProducts(ctx, report.DefaultTopProductsLimit)
	case JobKindOverview:
		_, err = w.dashboard.RefreshOverview(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}
	return err
}
