package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var (
	ownerCaller = identity.Identity{
		ID:   uuid.MustParse("0b7e3d1c-5a51-4c1e-9a55-6f5c1a1e0001"),
		Name: "Store Owner",
		Role: identity.RoleOwner,
	}
	customerCaller = identity.Identity{
		ID:   uuid.MustParse("0b7e3d1c-5a51-4c1e-9a55-6f5c1a1e0002"),
		Name: "Asha Rao",
		Role: identity.RoleCustomer,
	}
)

// withCaller attaches an identity the same way the JWT middleware does
func withCaller(caller identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, caller)
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), caller))
		c.Next()
	}
}

func newRouter(caller *identity.Identity) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.RequestIDKey, "req-test")
		c.Next()
	})
	if caller != nil {
		r.Use(withCaller(*caller))
	}
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes a response with data left raw for per-test decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest any) envelope {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
	return env
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	env := decode(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, code, env.Error.Code)
}

func TestBaseHandler_Responses(t *testing.T) {
	h := &BaseHandler{}
	r := newRouter(nil)
	r.GET("/ok", func(c *gin.Context) { h.Success(c, gin.H{"key": "value"}) })
	r.GET("/list", func(c *gin.Context) { h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20) })
	r.POST("/created", func(c *gin.Context) { h.Created(c, gin.H{"id": "1"}) })
	r.DELETE("/gone", func(c *gin.Context) { h.NoContent(c) })

	w := doJSON(r, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"key":"value"}}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/list", nil)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(45), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 20, env.Meta.Limit)
	assert.Equal(t, 3, env.Meta.TotalPages)

	w = doJSON(r, http.MethodPost, "/created", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodDelete, "/gone", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestBaseHandler_ErrorHelpers(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name   string
		call   func(*gin.Context)
		status int
		code   string
	}{
		{"bad request", func(c *gin.Context) { h.BadRequest(c, "nope") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"not found", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"unauthorized", func(c *gin.Context) { h.Unauthorized(c, "who") }, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"internal", func(c *gin.Context) { h.InternalError(c) }, http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(nil)
			r.GET("/x", tt.call)
			w := doJSON(r, http.MethodGet, "/x", nil)
			assertErrorCode(t, w, tt.status, tt.code)
			assert.Equal(t, "req-test", decode(t, w).Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"sentinel not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
		{"specific not found", shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found"), http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found"},
		{"invalid input", shared.NewDomainError("INVALID_PERCENT", "Percent must be 1-100"), http.StatusBadRequest, "INVALID_PERCENT", "Percent must be 1-100"},
		{"conflict", shared.NewDomainError("COLLECTION_HAS_PRODUCTS", "Collection still has products"), http.StatusConflict, "COLLECTION_HAS_PRODUCTS", "Collection still has products"},
		{"unmapped rule", shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired"), http.StatusUnprocessableEntity, "COUPON_EXPIRED", "Coupon has expired"},
		{"wrapped", fmt.Errorf("create order: %w", shared.ErrInsufficientStock), http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", "Insufficient stock available"},
		{"storage error", errors.New(`pq: relation "orders" does not exist`), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(nil)
			r.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })
			w := doJSON(r, http.MethodGet, "/x", nil)
			assertErrorCode(t, w, tt.status, tt.code)
			assert.Equal(t, tt.message, decode(t, w).Error.Message)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestBaseHandler_ParseUUIDParam(t *testing.T) {
	h := &BaseHandler{}
	r := newRouter(nil)
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.parseUUIDParam(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	})

	w := doJSON(r, http.MethodGet, "/items/not-a-uuid", nil)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidID)

	id := uuid.New()
	w = doJSON(r, http.MethodGet, "/items/"+id.String(), nil)
	var got uuid.UUID
	decodeData(t, w, &got)
	assert.Equal(t, id, got)
}

func TestBaseHandler_BindQuery(t *testing.T) {
	type filter struct {
		Search   string `form:"search"`
		Page     int    `form:"page" binding:"min=0"`
		PageSize int    `form:"page_size" binding:"min=0,max=100"`
	}
	h := &BaseHandler{}
	r := newRouter(nil)
	r.GET("/list", func(c *gin.Context) {
		var f filter
		page, size, ok := h.bindQuery(c, &f)
		if !ok {
			return
		}
		h.Success(c, gin.H{"search": f.Search, "page": page, "size": size})
	})

	tests := []struct {
		query string
		want  string
	}{
		{"", `{"search":"","page":1,"size":20}`},
		{"?search=kurta&page=3&limit=5", `{"search":"kurta","page":3,"size":5}`},
		{"?page_size=50&limit=5", `{"search":"","page":1,"size":50}`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/list"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, string(decode(t, w).Data))
		})
	}

	w := doJSON(r, http.MethodGet, "/list?limit=500", nil)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	w = doJSON(r, http.MethodGet, "/list?page=abc", nil)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}

func TestBaseHandler_OptionalUUIDQuery(t *testing.T) {
	h := &BaseHandler{}
	r := newRouter(nil)
	r.GET("/x", func(c *gin.Context) {
		id, ok := h.optionalUUIDQuery(c, "customer_id")
		if !ok {
			return
		}
		h.Success(c, gin.H{"set": id != nil})
	})

	w := doJSON(r, http.MethodGet, "/x", nil)
	assert.JSONEq(t, `{"set":false}`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodGet, "/x?customer_id="+uuid.NewString(), nil)
	assert.JSONEq(t, `{"set":true}`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodGet, "/x?customer_id=42", nil)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidID)
}
