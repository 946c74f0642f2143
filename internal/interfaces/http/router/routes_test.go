package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/handler"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func shopEngine(caller *identity.Identity, idempotency gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	if caller != nil {
		engine.Use(func(c *gin.Context) {
			c.Set(middleware.IdentityKey, *caller)
			c.Next()
		})
	}
	h := Handlers{
		Auth:       handler.NewAuthHandler(nil),
		Collection: handler.NewCollectionHandler(nil),
		Product:    handler.NewProductHandler(nil, nil),
		Order:      handler.NewOrderHandler(nil),
		Package:    handler.NewPackageHandler(nil),
		Coupon:     handler.NewCouponHandler(nil),
		Discount:   handler.NewDiscountHandler(nil),
		Customer:   handler.NewCustomerHandler(nil),
		Dashboard:  handler.NewDashboardHandler(nil),
		Upload:     handler.NewUploadHandler(nil, 0),
		System:     handler.NewSystemHandler("Shopping App API", "test", nil),
	}
	r := NewRouter(engine)
	r.Register(ShopGroups(h, Guards{OwnerOnly: middleware.OwnerOnly(), Idempotency: idempotency})...)
	r.Setup()
	return engine
}

func TestShopGroups_RegistersRoutes(t *testing.T) {
	engine := shopEngine(nil, nil)

	routes := map[string]bool{}
	for _, ri := range engine.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/collections",
		"DELETE /api/v1/collections/:id",
		"PUT /api/v1/products/:id/variants",
		"GET /api/v1/products/:id/effective-price",
		"POST /api/v1/orders",
		"GET /api/v1/orders/number/:number",
		"PUT /api/v1/orders/:id/payment-status",
		"GET /api/v1/packages/:id/packing-slip",
		"POST /api/v1/coupons/validate",
		"GET /api/v1/coupons/:id/stats",
		"PATCH /api/v1/discounts/:id/toggle",
		"GET /api/v1/customers/me",
		"PATCH /api/v1/customers/:id/status",
		"GET /api/v1/dashboard/top-products",
		"POST /api/v1/uploads/batch",
		"GET /api/v1/system/info",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestShopGroups_OwnerOnlyRoutes(t *testing.T) {
	customer := identity.Identity{ID: uuid.New(), Name: "Asha Rao", Role: identity.RoleCustomer}
	engine := shopEngine(&customer, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/collections"},
		{http.MethodDelete, "/api/v1/products/" + uuid.NewString()},
		{http.MethodPut, "/api/v1/orders/" + uuid.NewString() + "/status"},
		{http.MethodGet, "/api/v1/packages"},
		{http.MethodGet, "/api/v1/coupons"},
		{http.MethodGet, "/api/v1/discounts"},
		{http.MethodGet, "/api/v1/customers"},
		{http.MethodGet, "/api/v1/dashboard/overview"},
		{http.MethodPost, "/api/v1/uploads"},
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestShopGroups_IdempotencyOnlyOnOrderCreate(t *testing.T) {
	owner := identity.Identity{ID: uuid.New(), Name: "Store Owner", Role: identity.RoleOwner}
	var seen []string
	engine := shopEngine(&owner, func(c *gin.Context) {
		seen = append(seen, c.Request.Method+" "+c.FullPath())
		c.AbortWithStatus(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []string{"POST /api/v1/orders"}, seen)
}

func TestChain(t *testing.T) {
	h := func(c *gin.Context) {}
	mw := func(c *gin.Context) {}

	assert.Len(t, chain(h), 1)
	assert.Len(t, chain(h, nil), 1)
	assert.Len(t, chain(h, mw, nil, mw), 3)
}
