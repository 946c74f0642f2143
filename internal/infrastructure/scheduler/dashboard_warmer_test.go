package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) RefreshOrderStats(ctx context.Context, periodName string) (*report.OrderStats, error) {
	args := m.Called(ctx, periodName)
	stats, _ := args.Get(0).(*report.OrderStats)
	return stats, args.Error(1)
}

func (m *mockRefresher) RefreshTopProducts(ctx context.Context, limit int) ([]report.TopProduct, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]report.TopProduct)
	return products, args.Error(1)
}

func (m *mockRefresher) RefreshOverview(ctx context.Context) (*report.Overview, error) {
	args := m.Called(ctx)
	overview, _ := args.Get(0).(*report.Overview)
	return overview, args.Error(1)
}

func TestDashboardWarmer_Execute(t *testing.T) {
	ctx := context.Background()
	refresher := new(mockRefresher)
	refresher.On("RefreshOrderStats", ctx, "month").Return(&report.OrderStats{}, nil).Once()
	refresher.On("RefreshTopProducts", ctx, report.DefaultTopProductsLimit).Return([]report.TopProduct{}, nil).Once()
	refresher.On("RefreshOverview", ctx).Return(&report.Overview{}, nil).Once()

	w := NewDashboardWarmer(refresher)
	require.NoError(t, w.Execute(ctx, NewJob(JobKindOrderStats, report.PeriodMonth, 0)))
	require.NoError(t, w.Execute(ctx, NewJob(JobKindTopProducts, "", 0)))
	require.NoError(t, w.Execute(ctx, NewJob(JobKindOverview, "", 0)))

	refresher.AssertExpectations(t)
}

func TestDashboardWarmer_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	refresher := new(mockRefresher)
	boom := errors.New("connection refused")
	refresher.On("RefreshOverview", ctx).Return(nil, boom)

	err := NewDashboardWarmer(refresher).Execute(ctx, NewJob(JobKindOverview, "", 0))
	assert.ErrorIs(t, err, boom)
}

func TestDashboardWarmer_UnknownKind(t *testing.T) {
	err := NewDashboardWarmer(new(mockRefresher)).Execute(context.Background(), NewJob("LEDGER", "", 0))
	assert.ErrorIs(t, err, ErrUnknownJobKind)
}
