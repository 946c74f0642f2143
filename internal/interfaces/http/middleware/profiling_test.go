package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProfilingWithConfig_Disabled(t *testing.T) {
	w := httptest.NewRecorder()
	okRouter(ProfilingWithConfig(DefaultProfilingConfig(false))).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingWithConfig_RunsHandler(t *testing.T) {
	reached := false
	router := gin.New()
	router.Use(ProfilingWithConfig(DefaultProfilingConfig(true)))
	router.GET("/api/v1/orders/:id", func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingLabels(t *testing.T) {
	var labels map[string]string
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(IdentityKey, identity.Identity{ID: uuid.New(), Role: identity.RoleCustomer})
		c.Next()
	})
	router.GET("/api/v1/orders/:id", func(c *gin.Context) {
		labels = profilingLabels(c)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/9", nil))

	assert.Equal(t, map[string]string{
		telemetry.ProfilingLabelMethod: "GET",
		telemetry.ProfilingLabelRoute:  "/api/v1/orders/:id",
		telemetry.ProfilingLabelRole:   "customer",
	}, labels)
}
