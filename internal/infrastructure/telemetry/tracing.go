package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of spans opened through StartSpan.
const TracerName = "shopping-app"

// SpanOption adjusts a span before it starts.
type SpanOption func(*[]trace.SpanStartOption)

func WithAttribute(key string, value any) SpanOption {
	return func(opts *[]trace.SpanStartOption) {
		*opts = append(*opts, trace.WithAttributes(toAttribute(key, value)))
	}
}

// WithSpanKind overrides the default internal kind.
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(opts *[]trace.SpanStartOption) {
		*opts = append(*opts, trace.WithSpanKind(kind))
	}
}

// StartSpan opens a span on whatever tracer provider is installed globally,
// so it follows EnableSpanProfiles and test recorders alike.
//
//	ctx, span := telemetry.StartSpan(ctx, "dashboard.refresh")
//	defer span.End()
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	start := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	for _, opt := range opts {
		opt(&start)
	}
	return otel.Tracer(TracerName).Start(ctx, name, start...)
}

// StartServiceSpan names the span component.operation.
func StartServiceSpan(ctx context.Context, component, operation string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, component+"."+operation, opts...)
}

// SetAttributes takes key, value pairs. Pairs whose key is not a string are
// dropped, as is an unpaired trailing key.
func SetAttributes(span trace.Span, pairs ...any) {
	if span == nil {
		return
	}
	var attrs []attribute.KeyValue
	for i := 1; i < len(pairs); i += 2 {
		if key, ok := pairs[i-1].(string); ok {
			attrs = append(attrs, toAttribute(key, pairs[i]))
		}
	}
	span.SetAttributes(attrs...)
}

func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EndSpan closes span with an error status when *errp is set and Ok
// otherwise. Pair it with a named error result:
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "storage", "upload")
//	defer telemetry.EndSpan(span, &err)
func EndSpan(span trace.Span, errp *error) {
	defer span.End()
	if errp == nil || *errp == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	RecordError(span, *errp)
}

func toAttribute(key string, value any) attribute.KeyValue {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v)
	case bool:
		return k.Bool(v)
	case int:
		return k.Int(v)
	case int64:
		return k.Int64(v)
	case float64:
		return k.Float64(v)
	case time.Duration:
		return k.Float64(v.Seconds())
	case []string:
		return k.StringSlice(v)
	case fmt.Stringer:
		return k.String(v.String())
	}
	return k.String(fmt.Sprint(value))
}

// Span attribute keys.
const (
	SpanAttrOrderID     = "order_id"
	SpanAttrOrderNumber = "order_number"
	SpanAttrOrderStatus = "order_status"
	SpanAttrCustomerID  = "customer_id"
	SpanAttrProductID   = "product_id"
	SpanAttrCouponCode  = "coupon_code"
	SpanAttrItemCount   = "item_count"
	SpanAttrAmount      = "amount"
	SpanAttrPackageID   = "package_id"

	SpanAttrJobID      = "job.id"
	SpanAttrJobKind    = "job.kind"
	SpanAttrJobPeriod  = "job.period"
	SpanAttrJobAttempt = "job.attempt"

	SpanAttrStorageBucket = "storage.bucket"
	SpanAttrStorageKey    = "storage.key"
	SpanAttrStorageBytes  = "storage.bytes"
)
