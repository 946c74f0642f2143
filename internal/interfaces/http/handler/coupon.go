package handler

import (
	"context"

	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponService is the promotion service surface for coupons
type CouponService interface {
	Create(ctx context.Context, req promotionapp.CouponRequest) (*promotionapp.CouponResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*promotionapp.CouponResponse, error)
	List(ctx context.Context, filter promotionapp.CouponListFilter) ([]promotionapp.CouponResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req promotionapp.CouponRequest) (*promotionapp.CouponResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Toggle(ctx context.Context, id uuid.UUID) (*promotionapp.CouponResponse, error)
	Stats(ctx context.Context, id uuid.UUID) (*promotionapp.CouponStatsResponse, error)
	Validate(ctx context.Context, req promotionapp.ValidateCouponRequest) (*promotionapp.ValidateCouponResponse, error)
}

// CouponHandler handles coupon endpoints
type CouponHandler struct {
	BaseHandler
	couponService CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// Create godoc
// @Summary      Create a coupon
// @Description  Codes are stored upper-cased and must be unique
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body promotionapp.CouponRequest true "Coupon"
// @Success      201 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req promotionapp.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, coupon)
}

// GetByID godoc
// @Summary      Get a coupon
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/{id} [get]
func (h *CouponHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// List godoc
// @Summary      List coupons
// @Tags         coupons
// @Produce      json
// @Param        search    query string false "Code search"
// @Param        is_active query bool   false "Active filter"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]promotionapp.CouponResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	var filter promotionapp.CouponListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size

	coupons, total, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, coupons, total, page, size)
}

// Update godoc
// @Summary      Update a coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Coupon ID" format(uuid)
// @Param        request body promotionapp.CouponRequest true "Coupon"
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req promotionapp.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// Delete godoc
// @Summary      Delete a coupon
// @Tags         coupons
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.couponService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Toggle godoc
// @Summary      Toggle a coupon
// @Description  Flips the active flag
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/{id}/toggle [patch]
func (h *CouponHandler) Toggle(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.Toggle(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, coupon)
}

// Stats godoc
// @Summary      Coupon usage statistics
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponStatsResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/{id}/stats [get]
func (h *CouponHandler) Stats(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.couponService.Stats(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Validate godoc
// @Summary      Preview a coupon
// @Description  Checks a code against a subtotal without recording a use
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body promotionapp.ValidateCouponRequest true "Code and subtotal"
// @Success      200 {object} dto.Response{data=promotionapp.ValidateCouponResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req promotionapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.couponService.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
