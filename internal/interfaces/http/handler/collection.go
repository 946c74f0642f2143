package handler

import (
	"context"

	catalogapp "github.com/Charan2012-gif/Shopping-App/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CollectionService is the catalog service surface for collections
type CollectionService interface {
	Create(ctx context.Context, req catalogapp.CreateCollectionRequest) (*catalogapp.CollectionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CollectionResponse, error)
	List(ctx context.Context, filter catalogapp.CollectionListFilter) ([]catalogapp.CollectionResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCollectionRequest) (*catalogapp.CollectionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CollectionHandler handles collection endpoints
type CollectionHandler struct {
	BaseHandler
	collectionService CollectionService
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(collectionService CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// Create godoc
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCollectionRequest true "Collection"
// @Success      201 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /collections [post]
func (h *CollectionHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, collection)
}

// GetByID godoc
// @Summary      Get a collection
// @Tags         collections
// @Produce      json
// @Param        id path string true "Collection ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /collections/{id} [get]
func (h *CollectionHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	collection, err := h.collectionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// List godoc
// @Summary      List collections
// @Tags         collections
// @Produce      json
// @Param        search    query string false "Name search"
// @Param        is_active query bool   false "Active filter"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.CollectionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	var filter catalogapp.CollectionListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size

	collections, total, err := h.collectionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, collections, total, page, size)
}

// Update godoc
// @Summary      Update a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id      path string                               true "Collection ID" format(uuid)
// @Param        request body catalogapp.UpdateCollectionRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.CollectionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /collections/{id} [put]
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	collection, err := h.collectionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Delete godoc
// @Summary      Deactivate a collection
// @Description  Refused while the collection still has products
// @Tags         collections
// @Param        id path string true "Collection ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /collections/{id} [delete]
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.collectionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
