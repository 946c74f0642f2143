package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("User-Agent", "Test-Agent/1.0")
	router.ServeHTTP(w, req)
	return w
}

func requestEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := serve(router, http.MethodGet, "/products/42?expand=variants")
	assert.Equal(t, http.StatusOK, w.Code)

	entry := requestEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "/products/:id", fields["route"])
	assert.Equal(t, "/products/42", fields["path"])
	assert.Equal(t, "expand=variants", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "Test-Agent/1.0", fields["user_agent"])
}

func TestGinMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusCreated, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusConflict, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			core, recorded := observer.New(zapcore.DebugLevel)

			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			serve(router, http.MethodGet, "/x")
			assert.Equal(t, tt.level, requestEntry(t, recorded).Level)
		})
	}
}

func TestGinMiddleware_LogsCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(base))
	router.Use(func(c *gin.Context) {
		ctx, _ := WithCaller(c.Request.Context(), GetGinLogger(c), Caller{UserID: "u-1", Role: "owner"})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	router.GET("/dashboard", func(c *gin.Context) {
		L(c.Request.Context()).Info("building dashboard")
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodGet, "/dashboard")

	fields := requestEntry(t, recorded).ContextMap()
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "owner", fields["role"])

	handlerLogs := recorded.FilterMessage("building dashboard").All()
	require.Len(t, handlerLogs, 1)
	assert.Equal(t, "/dashboard", handlerLogs[0].ContextMap()["path"])
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	var w *httptest.ResponseRecorder
	assert.NotPanics(t, func() {
		w = serve(router, http.MethodGet, "/panic")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"An internal error occurred"}}`, w.Body.String())
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got *zap.Logger
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})
	serve(router, http.MethodGet, "/x")

	require.NotNil(t, got)
	assert.NotPanics(t, func() { got.Info("dropped") })
}
