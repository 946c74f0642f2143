package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg config.SwaggerConfig) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerGuard(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func swaggerGet(r *gin.Engine, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSwaggerGuard_Disabled(t *testing.T) {
	w := swaggerGet(swaggerRouter(config.SwaggerConfig{}), "10.0.0.1:1234")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"NOT_FOUND"`)
}

func TestSwaggerGuard_OpenWithoutAllowList(t *testing.T) {
	w := swaggerGet(swaggerRouter(config.SwaggerConfig{Enabled: true}), "203.0.113.9:1234")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs", w.Body.String())
}

func TestSwaggerGuard_AllowList(t *testing.T) {
	r := swaggerRouter(config.SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"127.0.0.1", "10.1.0.0/16", "not-an-ip"},
	})

	tests := []struct {
		remote string
		want   int
	}{
		{"127.0.0.1:5000", http.StatusOK},
		{"10.1.42.7:5000", http.StatusOK},
		{"10.2.0.1:5000", http.StatusForbidden},
		{"192.168.1.1:5000", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			assert.Equal(t, tt.want, swaggerGet(r, tt.remote).Code)
		})
	}
}

func TestIPAllowed(t *testing.T) {
	allowed := parseAllowList([]string{" ::ffff:192.0.2.1 ", "2001:db8::/32"})

	assert.True(t, ipAllowed(netip.MustParseAddr("192.0.2.1"), allowed))
	assert.True(t, ipAllowed(netip.MustParseAddr("2001:db8::1"), allowed))
	assert.False(t, ipAllowed(netip.MustParseAddr("2001:db9::1"), allowed))
	assert.False(t, ipAllowed(netip.Addr{}, allowed))
}
