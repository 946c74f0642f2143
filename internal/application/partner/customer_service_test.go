package partner

import (
	"context"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared/valueobject"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Meera Iyer", "meera@example.com", "9123456780", identity.RoleCustomer)
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

func newCustomerService() (*CustomerService, *MockCustomerRepository, *MockOrderRepository) {
	customers := new(MockCustomerRepository)
	orders := new(MockOrderRepository)
	return NewCustomerService(customers, orders), customers, orders
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer with address and password", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		publisher := new(MockEventPublisher)
		svc.SetEventPublisher(publisher)

		customers.On("ExistsByEmail", ctx, "meera@example.com", (*uuid.UUID)(nil)).Return(false, nil)
		customers.On("ExistsByMobile", ctx, "9123456780", (*uuid.UUID)(nil)).Return(false, nil)
		customers.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateCustomerRequest{
			Name:     "Meera Iyer",
			Email:    " Meera@Example.com ",
			Mobile:   "9123456780",
			Password: "s3cret-pass",
			Address:  &valueobject.AddressDTO{Line1: "12 MG Road", City: "Bengaluru", Pincode: "560001"},
		})
		require.NoError(t, err)
		assert.Equal(t, "meera@example.com", resp.Email)
		assert.Equal(t, "customer", resp.Role)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.HasPassword)
		require.NotNil(t, resp.Address)
		assert.Equal(t, "Bengaluru", resp.Address.City)
		publisher.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customers.On("ExistsByEmail", ctx, "meera@example.com", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CreateCustomerRequest{Name: "Meera", Email: "meera@example.com", Mobile: "9123456780"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate mobile", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customers.On("ExistsByEmail", ctx, "meera@example.com", (*uuid.UUID)(nil)).Return(false, nil)
		customers.On("ExistsByMobile", ctx, "9123456780", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CreateCustomerRequest{Name: "Meera", Email: "meera@example.com", Mobile: "9123456780"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid address", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customers.On("ExistsByEmail", ctx, mock.Anything, mock.Anything).Return(false, nil)
		customers.On("ExistsByMobile", ctx, mock.Anything, mock.Anything).Return(false, nil)

		_, err := svc.Create(ctx, CreateCustomerRequest{
			Name: "Meera", Email: "meera@example.com", Mobile: "9123456780",
			Address: &valueobject.AddressDTO{Line1: "12 MG Road", City: "Bengaluru", Pincode: "012345"},
		})
		assert.Equal(t, "INVALID_ADDRESS", shared.CodeOf(err))
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	svc, customers, _ := newCustomerService()
	customer := newTestCustomer(t)

	newEmail := "meera.iyer@example.com"
	owner := string(identity.RoleOwner)
	customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	customers.On("ExistsByEmail", ctx, newEmail, &customer.ID).Return(false, nil)
	customers.On("Save", ctx, customer).Return(nil)

	resp, err := svc.Update(ctx, customer.ID, UpdateCustomerRequest{Email: &newEmail, Role: &owner})
	require.NoError(t, err)
	assert.Equal(t, newEmail, resp.Email)
	assert.Equal(t, "Meera Iyer", resp.Name)
	assert.Equal(t, "owner", resp.Role)
	customers.AssertNotCalled(t, "ExistsByMobile", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerService_Update_Access(t *testing.T) {
	customer := newTestCustomer(t)
	owner := string(identity.RoleOwner)
	password := "takeover-pass"

	t.Run("customer cannot update another account", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: uuid.New(), Role: identity.RoleCustomer})

		_, err := svc.Update(ctx, customer.ID, UpdateCustomerRequest{Role: &owner, Password: &password})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("customer cannot promote themselves", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), customer.Identity())

		_, err := svc.Update(ctx, customer.ID, UpdateCustomerRequest{Role: &owner})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, identity.RoleCustomer, customer.Role)
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("customer updates their own name", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), customer.Identity())
		name := "Meera R Iyer"
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		customers.On("Save", ctx, customer).Return(nil)

		resp, err := svc.Update(ctx, customer.ID, UpdateCustomerRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, resp.Name)
		assert.Equal(t, "customer", resp.Role)
	})

	t.Run("owner changes a role", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		target := newTestCustomer(t)
		ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: uuid.New(), Role: identity.RoleOwner})
		customers.On("FindByID", ctx, target.ID).Return(target, nil)
		customers.On("Save", ctx, target).Return(nil)

		resp, err := svc.Update(ctx, target.ID, UpdateCustomerRequest{Role: &owner})
		require.NoError(t, err)
		assert.Equal(t, "owner", resp.Role)
	})
}

func TestCustomerService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customer := newTestCustomer(t)
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		customers.On("Save", ctx, customer).Return(nil)

		resp, err := svc.SetStatus(ctx, customer.ID, false)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("customers cannot change status", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customer := newTestCustomer(t)
		ctx := identity.WithIdentity(context.Background(), customer.Identity())

		_, err := svc.SetStatus(ctx, customer.ID, false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.True(t, customer.IsActive)
		customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("already active", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		customer := newTestCustomer(t)
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := svc.SetStatus(ctx, customer.ID, true)
		assert.Equal(t, "ALREADY_ACTIVE", shared.CodeOf(err))
		customers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_GetByID_Access(t *testing.T) {
	customer := newTestCustomer(t)

	t.Run("customer reads self", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), customer.Identity())
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		resp, err := svc.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, customer.ID, resp.ID)
	})

	t.Run("customer cannot read others", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: uuid.New(), Role: identity.RoleCustomer})

		_, err := svc.GetByID(ctx, customer.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		customers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("owner reads anyone", func(t *testing.T) {
		svc, customers, _ := newCustomerService()
		ctx := identity.WithIdentity(context.Background(), identity.Identity{ID: uuid.New(), Role: identity.RoleOwner})
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

		_, err := svc.GetByID(ctx, customer.ID)
		assert.NoError(t, err)
	})

	t.Run("me without identity", func(t *testing.T) {
		svc, _, _ := newCustomerService()
		_, err := svc.Me(context.Background())
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	svc, customers, _ := newCustomerService()
	active := true

	customers.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "meera" && f.Filters["role"] == "customer" && f.Filters["is_active"] == true && f.Page == 2
	})).Return([]partner.Customer{*newTestCustomer(t)}, nil)
	customers.On("Count", ctx, mock.Anything).Return(int64(21), nil)

	list, total, err := svc.List(ctx, CustomerListFilter{Search: "meera", Role: "customer", IsActive: &active, Page: 2})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(21), total)
}

func TestCustomerService_Orders(t *testing.T) {
	ctx := context.Background()
	svc, customers, orders := newCustomerService()
	customer := newTestCustomer(t)

	order := trade.Order{
		OrderNumber:   "ORD1767225600000001",
		CustomerID:    customer.ID,
		Status:        trade.OrderStatusDelivered,
		PaymentStatus: trade.PaymentStatusCompleted,
		FinalAmount:   decimal.NewFromInt(1599),
	}
	customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
	orders.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["customer_id"] == customer.ID
	})).Return([]trade.Order{order}, nil)
	orders.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	list, total, err := svc.Orders(ctx, customer.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ORD1767225600000001", list[0].OrderNumber)
	assert.Equal(t, "delivered", list[0].Status)
	assert.Equal(t, "completed", list[0].PaymentStatus)
}

func TestCustomerService_Orders_UnknownCustomer(t *testing.T) {
	ctx := context.Background()
	svc, customers, orders := newCustomerService()
	id := uuid.New()
	customers.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, _, err := svc.Orders(ctx, id, 1, 20)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	orders.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}
