package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Charan2012-gif/Shopping-App/internal/application/media"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// UploadService is the media service surface used by UploadHandler
type UploadService interface {
	UploadSingle(ctx context.Context, target media.UploadTarget, file media.FileInput) (*media.UploadedFile, error)
	UploadMultiple(ctx context.Context, target media.UploadTarget, files []media.FileInput) ([]media.UploadedFile, error)
	Delete(ctx context.Context, key string) error
}

// UploadHandler accepts image uploads for products and collections
type UploadHandler struct {
	BaseHandler
	uploadService UploadService
	maxFileSize   int64
}

// NewUploadHandler creates a new UploadHandler. Parts larger than maxFileSize are
// rejected before they are read into memory.
func NewUploadHandler(uploadService UploadService, maxFileSize int64) *UploadHandler {
	if maxFileSize <= 0 {
		maxFileSize = media.DefaultMaxFileSize
	}
	return &UploadHandler{uploadService: uploadService, maxFileSize: maxFileSize}
}

// DeleteUploadRequest names the object to remove
type DeleteUploadRequest struct {
	Key string `json:"key" form:"key" binding:"required"`
}

// UploadSingle godoc
// @Summary      Upload one image
// @Description  Stores a JPEG, PNG, WebP or GIF image. The type detected from the file content wins over the declared one.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData file   true  "Image"
// @Param        type  formData string false "Owner kind" Enums(product, collection, misc)
// @Param        name  formData string false "Product or collection name used in the key"
// @Param        color formData string false "Variant color used in the key"
// @Success      201 {object} dto.Response{data=media.UploadedFile}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [post]
func (h *UploadHandler) UploadSingle(c *gin.Context) {
	var target media.UploadTarget
	if err := c.ShouldBind(&target); err != nil {
		h.BindError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, "NO_FILES", "A file must be sent in the \"file\" field")
		return
	}
	input, ok := h.readPart(c, header)
	if !ok {
		return
	}

	uploaded, err := h.uploadService.UploadSingle(c.Request.Context(), target, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, uploaded)
}

// UploadMultiple godoc
// @Summary      Upload several images
// @Description  Every file is validated before any is stored; a failed batch stores nothing
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        files formData file   true  "Images (up to 10)"
// @Param        type  formData string false "Owner kind" Enums(product, collection, misc)
// @Param        name  formData string false "Product or collection name used in the key"
// @Param        color formData string false "Variant color used in the key"
// @Success      201 {object} dto.Response{data=[]media.UploadedFile}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads/batch [post]
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	var target media.UploadTarget
	if err := c.ShouldBind(&target); err != nil {
		h.BindError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Request must be multipart/form-data")
		return
	}
	headers := form.File["files"]

	inputs := make([]media.FileInput, 0, len(headers))
	for _, header := range headers {
		input, ok := h.readPart(c, header)
		if !ok {
			return
		}
		inputs = append(inputs, input)
	}

	uploaded, err := h.uploadService.UploadMultiple(c.Request.Context(), target, inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, uploaded)
}

// Delete godoc
// @Summary      Delete an uploaded image
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Param        request body DeleteUploadRequest true "Storage key"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	var req DeleteUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), req.Key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UploadHandler) readPart(c *gin.Context, header *multipart.FileHeader) (media.FileInput, bool) {
	if header.Size > h.maxFileSize {
		h.HandleError(c, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("%s exceeds the %d MB limit", header.Filename, h.maxFileSize>>20)))
		return media.FileInput{}, false
	}

	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return media.FileInput{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.BadRequest(c, "Failed to read uploaded file")
		return media.FileInput{}, false
	}
	return media.FileInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
