package trade

import (
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLineItem(t *testing.T, price int64, quantity int) LineItem {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), catalog.ProductAttributes{
		Name:   "Court Shorts",
		Type:   catalog.ProductTypeBottom,
		Gender: catalog.GenderMale,
	}, []string{"red"}, []string{"S", "M"})
	require.NoError(t, err)
	require.NoError(t, product.SetImages("red", []string{"https://cdn.example/red-1.jpg"}))

	variant, err := catalog.NewVariant(product, "M", "red", 10, decimal.NewFromInt(price))
	require.NoError(t, err)

	item, err := NewLineItem(product, variant, quantity)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, discount int64) *Order {
	t.Helper()
	order, err := NewOrder(OrderDraft{
		OrderNumber:    FormatNumber(PrefixOrder, time.Now(), 1),
		CustomerID:     uuid.New(),
		CustomerName:   "Asha",
		Items:          []LineItem{newTestLineItem(t, 500, 2)},
		DiscountAmount: decimal.NewFromInt(discount),
	})
	require.NoError(t, err)
	return order
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewLineItem(t *testing.T) {
	item := newTestLineItem(t, 999, 3)

	assert.Equal(t, "Court Shorts", item.ProductName)
	assert.Equal(t, "M", item.Size)
	assert.Equal(t, "red", item.Color)
	assert.Equal(t, "https://cdn.example/red-1.jpg", item.Image)
	assert.True(t, decimal.NewFromInt(2997).Equal(item.Amount))

	t.Run("rejects zero quantity", func(t *testing.T) {
		product, _ := catalog.NewProduct(uuid.New(), catalog.ProductAttributes{
			Name: "Tee", Type: catalog.ProductTypeTop, Gender: catalog.GenderFemale,
		}, []string{"blue"}, []string{"S"})
		variant, _ := catalog.NewVariant(product, "S", "blue", 1, decimal.NewFromInt(10))
		_, err := NewLineItem(product, variant, 0)
		assert.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("computes totals", func(t *testing.T) {
		order := newTestOrder(t, 200)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.Equal(t, PaymentMethodCOD, order.PaymentMethod)
		assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalMRP))
		assert.True(t, decimal.NewFromInt(800).Equal(order.FinalAmount))
		assert.True(t, order.FinalAmount.Equal(order.TotalMRP.Sub(order.DiscountAmount)))
		require.Len(t, order.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderCreated, order.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects discount above total", func(t *testing.T) {
		_, err := NewOrder(OrderDraft{
			OrderNumber:    "ORD1",
			CustomerID:     uuid.New(),
			Items:          []LineItem{newTestLineItem(t, 100, 1)},
			DiscountAmount: decimal.NewFromInt(101),
		})
		assert.Error(t, err)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := NewOrder(OrderDraft{OrderNumber: "ORD1", CustomerID: uuid.New()})
		assert.Error(t, err)
	})

	t.Run("snapshot is independent of caller slice", func(t *testing.T) {
		items := []LineItem{newTestLineItem(t, 100, 1)}
		order, err := NewOrder(OrderDraft{OrderNumber: "ORD2", CustomerID: uuid.New(), Items: items})
		require.NoError(t, err)
		items[0].ProductName = "edited"
		assert.Equal(t, "Court Shorts", order.Items[0].ProductName)
	})
}

func TestOrder_UpdateStatus(t *testing.T) {
	t.Run("walks the forward path", func(t *testing.T) {
		order := newTestOrder(t, 0)
		require.NoError(t, order.UpdateStatus(OrderStatusConfirmed, ""))
		require.NoError(t, order.UpdateStatus(OrderStatusProcessing, ""))
		require.NoError(t, order.UpdateStatus(OrderStatusShipped, "TRK-1"))
		require.NoError(t, order.UpdateStatus(OrderStatusDelivered, ""))

		assert.Equal(t, "TRK-1", order.TrackingID)
		assert.NotNil(t, order.ConfirmedAt)
		assert.NotNil(t, order.ShippedAt)
		assert.NotNil(t, order.DeliveredAt)
	})

	t.Run("skipping a step leaves state unchanged", func(t *testing.T) {
		order := newTestOrder(t, 0)
		version := order.Version
		err := order.UpdateStatus(OrderStatusShipped, "TRK")
		assert.Error(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Empty(t, order.TrackingID)
		assert.Equal(t, version, order.Version)
	})

	t.Run("delivered cannot be cancelled", func(t *testing.T) {
		order := newTestOrder(t, 0)
		order.Status = OrderStatusDelivered
		err := order.Cancel("changed mind")
		assert.Error(t, err)
		assert.Equal(t, OrderStatusDelivered, order.Status)
	})

	t.Run("cancel through status update", func(t *testing.T) {
		order := newTestOrder(t, 0)
		require.NoError(t, order.UpdateStatus(OrderStatusCancelled, ""))
		assert.True(t, order.IsCancelled())
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("unknown status", func(t *testing.T) {
		order := newTestOrder(t, 0)
		assert.Error(t, order.UpdateStatus(OrderStatus("lost"), ""))
	})
}

func TestOrder_SetPaymentStatus(t *testing.T) {
	order := newTestOrder(t, 0)
	order.ClearDomainEvents()

	require.NoError(t, order.SetPaymentStatus(PaymentStatusCompleted))
	require.NoError(t, order.SetPaymentStatus(PaymentStatusCompleted))
	assert.Equal(t, PaymentStatusCompleted, order.PaymentStatus)
	assert.Len(t, order.GetDomainEvents(), 1)

	assert.Error(t, order.SetPaymentStatus(PaymentStatus("bounced")))
}

func TestFormatNumber(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "ORD1700000000123007", FormatNumber(PrefixOrder, at, 7))
	assert.Equal(t, "PKG17000000001231234", FormatNumber(PrefixPackage, at, 1234))
}
