package handler

import (
	"context"

	tradeapp "github.com/Charan2012-gif/Shopping-App/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderService is the trade service surface for orders
type OrderService interface {
	Create(ctx context.Context, req tradeapp.CreateOrderRequest) (*tradeapp.OrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.OrderResponse, error)
	GetByNumber(ctx context.Context, orderNumber string) (*tradeapp.OrderResponse, error)
	List(ctx context.Context, filter tradeapp.OrderListFilter) ([]tradeapp.OrderResponse, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdateOrderStatusRequest) (*tradeapp.OrderResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req tradeapp.CancelOrderRequest) (*tradeapp.OrderResponse, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdatePaymentStatusRequest) (*tradeapp.OrderResponse, error)
}

// OrderHandler handles order endpoints. Customers only ever see their own
// orders; the service enforces that from the request identity.
type OrderHandler struct {
	BaseHandler
	orderService OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Place an order
// @Description  Prices the items at their current variant price, applies the running discount and an optional coupon, and reserves stock in one transaction. Send an Idempotency-Key header to make retries safe.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client key for safe retries"
// @Param        request body tradeapp.CreateOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetByNumber godoc
// @Summary      Get an order by number
// @Tags         orders
// @Produce      json
// @Param        number path string true "Order number" example(ORD-20261016-0001)
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List orders
// @Description  Owners see every order; customers see their own
// @Tags         orders
// @Produce      json
// @Param        search         query string false "Order number or customer name"
// @Param        status         query string false "Order status" Enums(pending, confirmed, processing, shipped, delivered, cancelled)
// @Param        payment_status query string false "Payment status" Enums(pending, completed, failed, refunded)
// @Param        customer_id    query string false "Customer filter" format(uuid)
// @Param        from           query string false "Created on or after (YYYY-MM-DD)"
// @Param        to             query string false "Created on or before (YYYY-MM-DD)"
// @Param        page           query int    false "Page number" default(1)
// @Param        limit          query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size
	if filter.CustomerID, ok = h.optionalUUIDQuery(c, "customer_id"); !ok {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page, size)
}

// UpdateStatus godoc
// @Summary      Change order status
// @Description  Moves the order along pending, confirmed, processing, shipped, delivered. Cancelling returns reserved stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdateOrderStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel an order
// @Description  Customers may cancel their own orders before they ship
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                        true  "Order ID" format(uuid)
// @Param        request body tradeapp.CancelOrderRequest false "Reason"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req tradeapp.CancelOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdatePaymentStatus godoc
// @Summary      Change payment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                                true "Order ID" format(uuid)
// @Param        request body tradeapp.UpdatePaymentStatusRequest true "Payment status"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/payment-status [put]
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
