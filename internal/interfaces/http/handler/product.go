package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	catalogapp "github.com/Charan2012-gif/Shopping-App/internal/application/catalog"
	promotionapp "github.com/Charan2012-gif/Shopping-App/internal/application/promotion"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService is the catalog service surface for products and variants
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductDetailResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertVariants(ctx context.Context, productID uuid.UUID, req catalogapp.UpsertVariantsRequest) (*catalogapp.UpsertVariantsResult, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]catalogapp.VariantResponse, error)
	ImportVariants(ctx context.Context, productID uuid.UUID, r io.Reader) (*catalogapp.VariantImportResult, error)
}

// MaxStockSheetSize caps the stock sheet accepted by ImportVariants
const MaxStockSheetSize = 1 << 20

// PriceResolver applies running discounts to a list price
type PriceResolver interface {
	EffectivePrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, at time.Time) (*promotionapp.EffectivePriceResponse, error)
}

// ProductHandler handles product and variant endpoints
type ProductHandler struct {
	BaseHandler
	productService ProductService
	prices         PriceResolver
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService, prices PriceResolver) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		prices:         prices,
	}
}

// EffectivePriceQuery selects the list price and moment to price at
type EffectivePriceQuery struct {
	Price string    `form:"price" binding:"required" example:"999.00"`
	At    time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Create godoc
// @Summary      Create a product
// @Description  Adds the product and increments its collection's product count
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @Summary      Get a product
// @Description  Product with its variants priced at read time
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ProductDetailResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search        query string false "Name search"
// @Param        collection_id query string false "Collection filter" format(uuid)
// @Param        type          query string false "Garment type" Enums(top, bottom)
// @Param        gender        query string false "Gender" Enums(m, f, unisex)
// @Param        is_active     query bool   false "Active filter"
// @Param        page          query int    false "Page number" default(1)
// @Param        limit         query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	page, size, ok := h.bindQuery(c, &filter)
	if !ok {
		return
	}
	filter.Page, filter.PageSize = page, size
	if filter.CollectionID, ok = h.optionalUUIDQuery(c, "collection_id"); !ok {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, page, size)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Description  Removes the product with its variants and decrements the collection count
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpsertVariants godoc
// @Summary      Upsert variants
// @Description  Creates or updates variants keyed by size and color. Entries are applied independently and reported one by one.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                             true "Product ID" format(uuid)
// @Param        request body catalogapp.UpsertVariantsRequest true "Variant batch"
// @Success      200 {object} dto.Response{data=catalogapp.UpsertVariantsResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants [put]
func (h *ProductHandler) UpsertVariants(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpsertVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.productService.UpsertVariants(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportVariants godoc
// @Summary      Import a stock sheet
// @Description  Reads a CSV with the columns size, color, quantity and price. Rows failing the sheet checks are reported and skipped; the rest are upserted like PUT /products/{id}/variants.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Product ID" format(uuid)
// @Param        file formData file   true "Stock sheet (CSV, up to 1 MB)"
// @Success      200 {object} dto.Response{data=catalogapp.VariantImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants/import [post]
func (h *ProductHandler) ImportVariants(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, "NO_FILES", "A CSV file must be sent in the \"file\" field")
		return
	}
	if header.Size > MaxStockSheetSize {
		h.HandleError(c, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("%s exceeds the %d MB limit", header.Filename, MaxStockSheetSize>>20)))
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.productService.ImportVariants(c.Request.Context(), id, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListVariants godoc
// @Summary      List variants
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.VariantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants [get]
func (h *ProductHandler) ListVariants(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	variants, err := h.productService.ListVariants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variants)
}

// EffectivePrice godoc
// @Summary      Effective price
// @Description  Price after the best running discount covering the product
// @Tags         products
// @Produce      json
// @Param        id    path  string true  "Product ID" format(uuid)
// @Param        price query string true  "List price" example(999.00)
// @Param        at    query string false "Moment to price at (RFC 3339), defaults to now"
// @Success      200 {object} dto.Response{data=promotionapp.EffectivePriceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/effective-price [get]
func (h *ProductHandler) EffectivePrice(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var q EffectivePriceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}
	price, err := decimal.NewFromString(q.Price)
	if err != nil || price.IsNegative() {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "price must be a non-negative decimal")
		return
	}
	at := q.At
	if at.IsZero() {
		at = time.Now()
	}

	result, err := h.prices.EffectivePrice(c.Request.Context(), id, price, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
