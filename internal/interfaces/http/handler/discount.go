package handler

import (
	"context"

	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DiscountService is the promotion service surface for discounts
type DiscountService interface {
	Create(ctx context.Context, req promotionapp.DiscountRequest) (*promotionapp.DiscountResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*promotionapp.DiscountResponse, error)
	List(ctx context.Context, filter promotionapp.DiscountListFilter) ([]promotionapp.DiscountResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req promotionapp.DiscountRequest) (*promotionapp.DiscountResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Toggle(ctx context.Context, id uuid.UUID) (*promotionapp.DiscountResponse, error)
}

// DiscountHandler handles discount endpoints
type DiscountHandler struct {
	BaseHandler
	discountService DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// Create godoc
// @Summary      Create a discount
// @Description  Percentage off a set of products between two dates
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        request body promotionapp.DiscountRequest true "Discount"
// @Success      201 {object} dto.Response{data=promotionapp.DiscountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	var req promotionapp.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discount, err := h.discountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, discount)
}

// GetByID godoc
// @Summary      Get a discount
// @Tags         discounts
// @Produce      json
// @Param        id path string true "Discount ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.DiscountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /discounts/{id} [get]
func (h *DiscountHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := h.discountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// List godoc
// @Summary      List discounts
// @Tags         discounts
// @Produce      json
// @Param        search    query string false "Name search"
// @Param        is_active query bool   false "Active filter"
// @Param        running   query bool   false "Only discounts running now"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]promotionapp.DiscountResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /discounts [get]
func (h *DiscountHandler) List(c *gin.Context) {
	var filter promotionapp.DiscountListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size

	discounts, total, err := h.discountService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, discounts, total, page, size)
}

// Update godoc
// @Summary      Update a discount
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Discount ID" format(uuid)
// @Param        request body promotionapp.DiscountRequest true "Discount"
// @Success      200 {object} dto.Response{data=promotionapp.DiscountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /discounts/{id} [put]
func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req promotionapp.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discount, err := h.discountService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}

// Delete godoc
// @Summary      Delete a discount
// @Tags         discounts
// @Param        id path string true "Discount ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /discounts/{id} [delete]
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.discountService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Toggle godoc
// @Summary      Toggle a discount
// @Tags         discounts
// @Produce      json
// @Param        id path string true "Discount ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.DiscountResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /discounts/{id}/toggle [patch]
func (h *DiscountHandler) Toggle(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	discount, err := h.discountService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, discount)
}
