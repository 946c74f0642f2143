package handler

import (
	"context"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/report"
	"github.com/gin-gonic/gin"
)

// DashboardService is the report service surface used by DashboardHandler
type DashboardService interface {
	OrderStats(ctx context.Context, periodName string) (*report.OrderStats, error)
	TopProducts(ctx context.Context, limit int) ([]report.TopProduct, error)
	Overview(ctx context.Context) (*report.Overview, error)
}

// DashboardHandler serves the owner dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// OrderStatsQuery selects the statistics window
type OrderStatsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=day week month all"`
}

// TopProductsQuery bounds the best seller list
type TopProductsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// OrderStats godoc
// @Summary      Order statistics
// @Description  Orders by status, a daily series and totals for the period. Cancelled orders only count in the status breakdown.
// @Tags         dashboard
// @Produce      json
// @Param        period query string false "Window" Enums(day, week, month, all) default(week)
// @Success      200 {object} dto.Response{data=report.OrderStats}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/orders [get]
func (h *DashboardHandler) OrderStats(c *gin.Context) {
	var q OrderStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	stats, err := h.dashboardService.OrderStats(c.Request.Context(), q.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// TopProducts godoc
// @Summary      Best selling products
// @Tags         dashboard
// @Produce      json
// @Param        limit query int false "Number of products" default(10) maximum(50)
// @Success      200 {object} dto.Response{data=[]report.TopProduct}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	var q TopProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = report.DefaultTopProductsLimit
	}

	products, err := h.dashboardService.TopProducts(c.Request.Context(), q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Overview godoc
// @Summary      Dashboard headline counts
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=report.Overview}
// @Security     BearerAuth
// @Router       /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}
