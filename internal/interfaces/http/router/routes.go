package router

import (
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers of the shop API
type Handlers struct {
	Auth       *handler.AuthHandler
	Collection *handler.CollectionHandler
	Product    *handler.ProductHandler
	Order      *handler.OrderHandler
	Package    *handler.PackageHandler
	Coupon     *handler.CouponHandler
	Discount   *handler.DiscountHandler
	Customer   *handler.CustomerHandler
	Dashboard  *handler.DashboardHandler
	Upload     *handler.UploadHandler
	System     *handler.SystemHandler
}

// Guards are the per-route middleware the shop groups need
type Guards struct {
	// OwnerOnly rejects callers without the owner role
	OwnerOnly gin.HandlerFunc
	// Idempotency replays order creation retries; nil disables it
	Idempotency gin.HandlerFunc
	// AuthRateLimit throttles login and refresh; nil disables it
	AuthRateLimit gin.HandlerFunc
}

// chain prepends the non-nil middleware to h
func chain(h gin.HandlerFunc, middleware ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(middleware)+1)
	for _, mw := range middleware {
		if mw != nil {
			out = append(out, mw)
		}
	}
	return append(out, h)
}

// PublicAuthPaths lists the versioned routes reachable without a token
func PublicAuthPaths(basePath string) []string {
	return []string{basePath + "/auth/login", basePath + "/auth/refresh"}
}

// ShopGroups builds the route groups of the shop API. Reads of the catalog are
// open to every caller; writes and back-office resources are owner only.
func ShopGroups(h Handlers, g Guards) []RouteRegistrar {
	owner := g.OwnerOnly

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", chain(h.Auth.Login, g.AuthRateLimit)...).
		POST("/refresh", chain(h.Auth.Refresh, g.AuthRateLimit)...).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	collections := NewDomainGroup("collections", "/collections")
	collections.GET("", h.Collection.List).
		GET("/:id", h.Collection.GetByID)
	collections.Group("collections-admin", "").Use(owner).
		POST("", h.Collection.Create).
		PUT("/:id", h.Collection.Update).
		DELETE("/:id", h.Collection.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List).
		GET("/:id", h.Product.GetByID).
		GET("/:id/variants", h.Product.ListVariants).
		GET("/:id/effective-price", h.Product.EffectivePrice)
	products.Group("products-admin", "").Use(owner).
		POST("", h.Product.Create).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete).
		PUT("/:id/variants", h.Product.UpsertVariants).
		POST("/:id/variants/import", h.Product.ImportVariants)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", chain(h.Order.Create, g.Idempotency)...).
		GET("", h.Order.List).
		GET("/number/:number", h.Order.GetByNumber).
		GET("/:id", h.Order.GetByID).
		POST("/:id/cancel", h.Order.Cancel)
	orders.Group("orders-admin", "").Use(owner).
		PUT("/:id/status", h.Order.UpdateStatus).
		PUT("/:id/payment-status", h.Order.UpdatePaymentStatus)

	packages := NewDomainGroup("packages", "/packages").Use(owner)
	packages.POST("", h.Package.Create).
		GET("", h.Package.List).
		GET("/:id", h.Package.GetByID).
		PUT("/:id", h.Package.UpdateDetails).
		PUT("/:id/status", h.Package.UpdateStatus).
		GET("/:id/packing-slip", h.Package.PackingSlip)

	coupons := NewDomainGroup("coupons", "/coupons")
	coupons.POST("/validate", h.Coupon.Validate)
	coupons.Group("coupons-admin", "").Use(owner).
		POST("", h.Coupon.Create).
		GET("", h.Coupon.List).
		GET("/:id", h.Coupon.GetByID).
		PUT("/:id", h.Coupon.Update).
		DELETE("/:id", h.Coupon.Delete).
		PATCH("/:id/toggle", h.Coupon.Toggle).
		GET("/:id/stats", h.Coupon.Stats)

	discounts := NewDomainGroup("discounts", "/discounts").Use(owner)
	discounts.POST("", h.Discount.Create).
		GET("", h.Discount.List).
		GET("/:id", h.Discount.GetByID).
		PUT("/:id", h.Discount.Update).
		DELETE("/:id", h.Discount.Delete).
		PATCH("/:id/toggle", h.Discount.Toggle)

	customers := NewDomainGroup("customers", "/customers")
	customers.GET("/me", h.Customer.Me).
		GET("/:id", h.Customer.GetByID).
		PUT("/:id", h.Customer.Update).
		GET("/:id/orders", h.Customer.Orders)
	customers.Group("customers-admin", "").Use(owner).
		POST("", h.Customer.Create).
		GET("", h.Customer.List).
		PATCH("/:id/status", h.Customer.SetStatus)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(owner)
	dashboard.GET("/orders", h.Dashboard.OrderStats).
		GET("/top-products", h.Dashboard.TopProducts).
		GET("/overview", h.Dashboard.Overview)

	uploads := NewDomainGroup("uploads", "/uploads").Use(owner)
	uploads.POST("", h.Upload.UploadSingle).
		POST("/batch", h.Upload.UploadMultiple).
		DELETE("", h.Upload.Delete)

	system := NewDomainGroup("system", "/system").Use(owner)
	system.GET("/info", h.System.GetSystemInfo)

	return []RouteRegistrar{
		auth, collections, products, orders, packages, coupons,
		discounts, customers, dashboard, uploads, system,
	}
}
