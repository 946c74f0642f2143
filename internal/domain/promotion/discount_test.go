package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowTerms(pct int64, start, end time.Time, products ...uuid.UUID) DiscountTerms {
	return DiscountTerms{
		Name:      "Sale",
		Products:  products,
		Percent:   decimal.NewFromInt(pct),
		StartDate: start,
		EndDate:   end,
	}
}

func TestNewDiscount(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(72 * time.Hour)

	_, err := NewDiscount(windowTerms(20, t0, t1))
	require.NoError(t, err)

	tests := []struct {
		name  string
		terms DiscountTerms
	}{
		{"zero percent", windowTerms(0, t0, t1)},
		{"percent above 90", windowTerms(91, t0, t1)},
		{"end equal to start", windowTerms(10, t0, t0)},
		{"end before start", windowTerms(10, t1, t0)},
		{"empty name", DiscountTerms{Percent: decimal.NewFromInt(10), StartDate: t0, EndDate: t1}},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewDiscount(tt.terms)
			assert.Error(t, err)
		})
	}
}

func TestDiscount_IsRunning(t *testing.T) {
	t0 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)
	d, err := NewDiscount(windowTerms(20, t0, t1))
	require.NoError(t, err)

	assert.True(t, d.IsRunning(t0))
	assert.True(t, d.IsRunning(t0.Add(12*time.Hour)))
	assert.False(t, d.IsRunning(t1))
	assert.False(t, d.IsRunning(t0.Add(-time.Second)))
	assert.True(t, d.AppliesTo(uuid.New()))

	d.Toggle()
	assert.False(t, d.IsRunning(t0.Add(time.Hour)))
}

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)
	product := uuid.New()
	price := decimal.NewFromInt(1000)

	t.Run("no discount keeps price", func(t *testing.T) {
		got, best := EffectivePrice(nil, product, price, now)
		assert.Nil(t, best)
		assert.True(t, price.Equal(got))
	})

	t.Run("highest percent wins", func(t *testing.T) {
		d10, _ := NewDiscount(windowTerms(10, start, end))
		d30, _ := NewDiscount(windowTerms(30, start, end, product))
		other, _ := NewDiscount(windowTerms(50, start, end, uuid.New()))

		got, best := EffectivePrice([]Discount{*d10, *d30, *other}, product, price, now)
		require.NotNil(t, best)
		assert.Equal(t, d30.ID, best.ID)
		assert.Equal(t, "700.00", got.StringFixed(2))
	})

	t.Run("equal percent goes to most recently created", func(t *testing.T) {
		older, _ := NewDiscount(windowTerms(25, start, end))
		newer, _ := NewDiscount(windowTerms(25, start, end))
		older.CreatedAt = now.Add(-2 * time.Hour)
		newer.CreatedAt = now.Add(-1 * time.Hour)

		_, best := EffectivePrice([]Discount{*older, *newer}, product, price, now)
		require.NotNil(t, best)
		assert.Equal(t, newer.ID, best.ID)
	})

	t.Run("discount outside window is ignored", func(t *testing.T) {
		past, _ := NewDiscount(windowTerms(40, start.Add(-72*time.Hour), start))
		got, best := EffectivePrice([]Discount{*past}, product, price, now)
		assert.Nil(t, best)
		assert.True(t, price.Equal(got))
	})
}
