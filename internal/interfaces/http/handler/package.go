package handler

import (
	"context"
	"fmt"
	"net/http"

	tradeapp "github.com/Charan2012-gif/Shopping-App/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PackageService is the trade service surface for shipments
type PackageService interface {
	Create(ctx context.Context, req tradeapp.CreatePackageRequest) (*tradeapp.PackageResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.PackageResponse, error)
	List(ctx context.Context, filter tradeapp.PackageListFilter) ([]tradeapp.PackageResponse, int64, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req tradeapp.ShipmentDetailsRequest) (*tradeapp.PackageResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.UpdatePackageStatusRequest) (*tradeapp.PackageResponse, error)
	PackingSlip(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// PackageHandler handles shipment package endpoints
type PackageHandler struct {
	BaseHandler
	packageService PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageService PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// Create godoc
// @Summary      Pack orders
// @Description  Groups confirmed or processing orders into a new package
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreatePackageRequest true "Orders and shipment details"
// @Success      201 {object} dto.Response{data=tradeapp.PackageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pkg, err := h.packageService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pkg)
}

// GetByID godoc
// @Summary      Get a package
// @Tags         packages
// @Produce      json
// @Param        id path string true "Package ID" format(uuid)
// @Success      200 {object} dto.Response{data=tradeapp.PackageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /packages/{id} [get]
func (h *PackageHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pkg, err := h.packageService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// List godoc
// @Summary      List packages
// @Tags         packages
// @Produce      json
// @Param        search query string false "Package number or tracking ID"
// @Param        status query string false "Package status" Enums(packed, shipped, in_transit, delivered)
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]tradeapp.PackageResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	var filter tradeapp.PackageListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size

	packages, total, err := h.packageService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, packages, total, page, size)
}

// UpdateDetails godoc
// @Summary      Edit shipment details
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Package ID" format(uuid)
// @Param        request body tradeapp.ShipmentDetailsRequest true "Courier details"
// @Success      200 {object} dto.Response{data=tradeapp.PackageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /packages/{id} [put]
func (h *PackageHandler) UpdateDetails(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req tradeapp.ShipmentDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pkg, err := h.packageService.UpdateDetails(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// UpdateStatus godoc
// @Summary      Change package status
// @Description  Shipping marks the packed orders shipped; delivering marks them delivered
// @Tags         packages
// @Accept       json
// @Produce      json
// @Param        id      path string                                true "Package ID" format(uuid)
// @Param        request body tradeapp.UpdatePackageStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=tradeapp.PackageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /packages/{id}/status [put]
func (h *PackageHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdatePackageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pkg, err := h.packageService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// PackingSlip godoc
// @Summary      Packing slip PDF
// @Tags         packages
// @Produce      application/pdf
// @Param        id path string true "Package ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /packages/{id}/packing-slip [get]
func (h *PackageHandler) PackingSlip(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pdf, err := h.packageService.PackingSlip(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="packing-slip-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
