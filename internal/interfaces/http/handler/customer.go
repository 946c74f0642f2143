package handler

import (
	"context"

	partnerapp "github.com/Charan2012-gif/Shopping-App/internal/application/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerService is the partner service surface used by CustomerHandler
type CustomerService interface {
	Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error)
	Me(ctx context.Context) (*partnerapp.CustomerResponse, error)
	List(ctx context.Context, filter partnerapp.CustomerListFilter) ([]partnerapp.CustomerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, active bool) (*partnerapp.CustomerResponse, error)
	Orders(ctx context.Context, id uuid.UUID, page, pageSize int) ([]partnerapp.CustomerOrderResponse, int64, error)
}

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create godoc
// @Summary      Create a customer
// @Description  Registers a customer or owner account. Email and mobile must be unique.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @Summary      Get a customer
// @Description  Customers may only read their own record
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Me godoc
// @Summary      Get the caller's customer record
// @Tags         customers
// @Produce      json
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/me [get]
func (h *CustomerHandler) Me(c *gin.Context) {
	customer, err := h.customerService.Me(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search    query string false "Name, email or mobile"
// @Param        role      query string false "Role" Enums(customer, owner)
// @Param        is_active query bool   false "Active flag"
// @Param        order_by  query string false "Sort field" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]partnerapp.CustomerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter partnerapp.CustomerListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, page, size)
}

// Update godoc
// @Summary      Update a customer
// @Description  Only supplied fields change. Customers cannot change their own role.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "Customer ID" format(uuid)
// @Param        request body partnerapp.UpdateCustomerRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// SetStatus godoc
// @Summary      Activate or deactivate a customer
// @Description  Deactivated customers cannot log in; their orders are kept
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "Customer ID" format(uuid)
// @Param        request body partnerapp.SetCustomerStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=partnerapp.CustomerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id}/status [patch]
func (h *CustomerHandler) SetStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req partnerapp.SetCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	customer, err := h.customerService.SetStatus(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Orders godoc
// @Summary      List a customer's orders
// @Tags         customers
// @Produce      json
// @Param        id    path  string true  "Customer ID" format(uuid)
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]partnerapp.CustomerOrderResponse,meta=dto.Meta}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /customers/{id}/orders [get]
func (h *CustomerHandler) Orders(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var p dto.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		h.BindError(c, err)
		return
	}
	page, size := p.Number(), p.Size(defaultPageSize)

	orders, total, err := h.customerService.Orders(c.Request.Context(), id, page, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page, size)
}
