package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler_Health(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Checks: map[string]string{}},
		},
		{
			name:       "all up",
			checks:     map[string]HealthCheck{"database": up, "redis": up},
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Checks: map[string]string{"database": "up", "redis": "up"}},
		},
		{
			name:       "redis down",
			checks:     map[string]HealthCheck{"database": up, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "degraded", Checks: map[string]string{"database": "up", "redis": "down"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSystemHandler("Shopping App API", "1.0.0", tt.checks)
			r := newRouter(nil)
			r.GET("/health", h.Health)

			w := doJSON(r, http.MethodGet, "/health", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.Checks, got.Checks)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("Shopping App API", "1.2.3", nil)
	r := newRouter(nil)
	r.GET("/system/info", h.GetSystemInfo)

	var info SystemInfoResponse
	decodeData(t, doJSON(r, http.MethodGet, "/system/info", nil), &info)

	assert.Equal(t, "Shopping App API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}
