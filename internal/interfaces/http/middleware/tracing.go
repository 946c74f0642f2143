// Package middleware provides the gin middleware of the shop API.
package middleware

import (
	"net/http"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig returns OpenTelemetry tracing middleware built on otelgin
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "shop-backend"
	}
	return otelgin.Middleware(serviceName)
}

// SpanEnricher names the server span "METHOD /route/pattern" and copies the
// request ID and the authenticated caller onto it. Place it after the auth
// middleware.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			route := c.FullPath()
			if route == "" {
				route = "unknown"
			}
			span.SetName(c.Request.Method + " " + route)
			if requestID := GetRequestID(c); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
			if id, ok := GetIdentity(c); ok {
				span.SetAttributes(
					attribute.String("user_id", id.ID.String()),
					telemetry.AttrRole.String(id.Role.String()),
				)
			}
		}
		c.Next()
	}
}

// SpanErrorMarker marks the active span as failed for 4xx and 5xx responses.
// Place it after the tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		message := http.StatusText(status)
		if status >= http.StatusInternalServerError {
			message = "Internal Server Error"
		}
		span.SetStatus(codes.Error, message)
		span.SetAttributes(telemetry.AttrHTTPStatusCode.Int(status))
	}
}
