package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/Charan2012-gif/Shopping-App/internal/application/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func collectionRouter(svc CollectionService) *gin.Engine {
	h := NewCollectionHandler(svc)
	r := newRouter(&ownerCaller)
	r.POST("/collections", h.Create)
	r.GET("/collections", h.List)
	r.GET("/collections/:id", h.GetByID)
	r.PUT("/collections/:id", h.Update)
	r.DELETE("/collections/:id", h.Delete)
	return r
}

func TestCollectionHandler_Create(t *testing.T) {
	svc := new(mockCollectionService)
	req := catalogapp.CreateCollectionRequest{Name: "Summer", Description: "Linen and cotton"}
	svc.On("Create", mock.Anything, req).
		Return(&catalogapp.CollectionResponse{ID: uuid.New(), Name: "Summer", IsActive: true}, nil)

	w := doJSON(collectionRouter(svc), http.MethodPost, "/collections", req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got catalogapp.CollectionResponse
	decodeData(t, w, &got)
	assert.Equal(t, "Summer", got.Name)
	assert.True(t, got.IsActive)
	svc.AssertExpectations(t)
}

func TestCollectionHandler_Create_Validation(t *testing.T) {
	svc := new(mockCollectionService)

	w := doJSON(collectionRouter(svc), http.MethodPost, "/collections", map[string]string{"image": "not a url"})

	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	fields := map[string]bool{}
	for _, d := range decode(t, w).Error.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["image"])
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCollectionHandler_List(t *testing.T) {
	svc := new(mockCollectionService)
	active := true
	svc.On("List", mock.Anything, catalogapp.CollectionListFilter{
		Search:   "sum",
		IsActive: &active,
		Page:     2,
		PageSize: 10,
	}).Return([]catalogapp.CollectionResponse{{Name: "Summer"}}, int64(11), nil)

	w := doJSON(collectionRouter(svc), http.MethodGet, "/collections?search=sum&is_active=true&page=2&limit=10", nil)

	var got []catalogapp.CollectionResponse
	env := decodeData(t, w, &got)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(11), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestCollectionHandler_GetByID(t *testing.T) {
	svc := new(mockCollectionService)
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, shared.NewDomainError("COLLECTION_NOT_FOUND", "Collection not found"))
	r := collectionRouter(svc)

	assertErrorCode(t, doJSON(r, http.MethodGet, "/collections/"+id.String(), nil), http.StatusNotFound, "COLLECTION_NOT_FOUND")
	assertErrorCode(t, doJSON(r, http.MethodGet, "/collections/abc", nil), http.StatusBadRequest, dto.ErrCodeInvalidID)
}

func TestCollectionHandler_Update(t *testing.T) {
	svc := new(mockCollectionService)
	id := uuid.New()
	name := "Monsoon"
	svc.On("Update", mock.Anything, id, catalogapp.UpdateCollectionRequest{Name: &name}).
		Return(&catalogapp.CollectionResponse{ID: id, Name: name, Version: 2}, nil)

	w := doJSON(collectionRouter(svc), http.MethodPut, "/collections/"+id.String(), map[string]string{"name": name})

	var got catalogapp.CollectionResponse
	decodeData(t, w, &got)
	assert.Equal(t, 2, got.Version)
	svc.AssertExpectations(t)
}

func TestCollectionHandler_Delete(t *testing.T) {
	svc := new(mockCollectionService)
	empty, busy := uuid.New(), uuid.New()
	svc.On("Delete", mock.Anything, empty).Return(nil)
	svc.On("Delete", mock.Anything, busy).
		Return(shared.NewDomainError("COLLECTION_HAS_PRODUCTS", "Collection still has products"))
	r := collectionRouter(svc)

	w := doJSON(r, http.MethodDelete, "/collections/"+empty.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodDelete, "/collections/"+busy.String(), nil)
	assertErrorCode(t, w, http.StatusConflict, "COLLECTION_HAS_PRODUCTS")
}
