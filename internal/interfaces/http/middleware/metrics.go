package middleware

import (
	"slices"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  *telemetry.InFlight
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	in := telemetry.NewInstruments(meter)
	m := &httpMetrics{
		requestTotal:    in.Counter("http_server_request_total", "Total number of HTTP requests", "{request}"),
		requestDuration: in.Histogram("http_server_request_duration_seconds", "HTTP request latency", "s", telemetry.HTTPDurationBuckets...),
		requestSize:     in.Histogram("http_server_request_size_bytes", "HTTP request body size", "By", telemetry.BodySizeBuckets...),
		responseSize:    in.Histogram("http_server_response_size_bytes", "HTTP response body size", "By", telemetry.BodySizeBuckets...),
		activeRequests:  in.InFlight("http_server_active_requests", "Number of requests currently being served", "{request}"),
	}
	return m, in.Err()
}

// HTTPMetrics records request count, latency, body sizes and in-flight
// requests on meter. A nil meter disables the middleware.
func HTTPMetrics(meter metric.Meter, log *zap.Logger) gin.HandlerFunc {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		if log != nil {
			log.Warn("HTTP metrics disabled", zap.Error(err))
		}
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		done := metrics.activeRequests.Begin(ctx)
		c.Next()
		done()

		// route patterns, not raw paths, keep cardinality bounded
		routeAttrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(getRoutePattern(c)),
		}
		requestAttrs := append(slices.Clone(routeAttrs), telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))
		if id, ok := GetIdentity(c); ok {
			requestAttrs = append(requestAttrs, telemetry.AttrRole.String(id.Role.String()))
		}

		metrics.requestTotal.Inc(ctx, requestAttrs...)
		metrics.requestDuration.RecordDuration(ctx, time.Since(start), routeAttrs...)
		if size := c.Request.ContentLength; size > 0 {
			metrics.requestSize.Record(ctx, float64(size), routeAttrs...)
		}
		if size := c.Writer.Size(); size > 0 {
			metrics.responseSize.Record(ctx, float64(size), routeAttrs...)
		}
	}
}

func getRoutePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}
