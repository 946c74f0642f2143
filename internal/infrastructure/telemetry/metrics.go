package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Collector
	Enabled  bool
	Interval time.Duration // push period, 60s when zero
}

// MeterProvider owns the SDK meter provider. The zero provider hands out
// meters from the global (no-op) provider.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
}

// NewMeterProvider pushes metrics to the collector on a fixed interval.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{}
	if !cfg.Enabled {
		logger.Info("Metrics disabled")
		return mp, nil
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
	)
	otel.SetMeterProvider(mp.provider)
	logger.Info("Metrics enabled",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("interval", cfg.Interval))
	return mp, nil
}

func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Shutdown exports what is pending and stops the reader.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	return shutdownWithin(ctx, "meter", mp.provider.Shutdown)
}

// Instruments creates instruments on one meter and keeps every creation
// error, so a block of declarations is checked once with Err.
type Instruments struct {
	meter metric.Meter
	errs  []error
}

func NewInstruments(meter metric.Meter) *Instruments {
	return &Instruments{meter: meter}
}

// Err reports every instrument that could not be created.
func (in *Instruments) Err() error {
	return errors.Join(in.errs...)
}

func (in *Instruments) fail(kind, name string, err error) {
	in.errs = append(in.errs, fmt.Errorf("create %s %s: %w", kind, name, err))
}

// Counter counts events.
type Counter struct{ c metric.Int64Counter }

func (in *Instruments) Counter(name, description, unit string) *Counter {
	c, err := in.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		in.fail("counter", name, err)
	}
	return &Counter{c: c}
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.c.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (c *Counter) Add(ctx context.Context, n int64, attrs ...attribute.KeyValue) {
	c.c.Add(ctx, n, metric.WithAttributes(attrs...))
}

// Amount sums fractional quantities such as revenue.
type Amount struct{ c metric.Float64Counter }

func (in *Instruments) Amount(name, description, unit string) *Amount {
	c, err := in.meter.Float64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		in.fail("counter", name, err)
	}
	return &Amount{c: c}
}

func (a *Amount) Add(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	a.c.Add(ctx, v, metric.WithAttributes(attrs...))
}

// Histogram records a distribution. Durations are recorded in seconds.
type Histogram struct{ h metric.Float64Histogram }

func (in *Instruments) Histogram(name, description, unit string, buckets ...float64) *Histogram {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := in.meter.Float64Histogram(name, opts...)
	if err != nil {
		in.fail("histogram", name, err)
	}
	return &Histogram{h: h}
}

func (h *Histogram) Record(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.h.Record(ctx, v, metric.WithAttributes(attrs...))
}

func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge holds the last observed value.
type Gauge struct{ g metric.Int64Gauge }

func (in *Instruments) Gauge(name, description, unit string) *Gauge {
	g, err := in.meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		in.fail("gauge", name, err)
	}
	return &Gauge{g: g}
}

func (g *Gauge) Record(ctx context.Context, v int64, attrs ...attribute.KeyValue) {
	g.g.Record(ctx, v, metric.WithAttributes(attrs...))
}

// InFlight tracks work currently in progress.
type InFlight struct{ c metric.Int64UpDownCounter }

func (in *Instruments) InFlight(name, description, unit string) *InFlight {
	c, err := in.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		in.fail("up-down counter", name, err)
	}
	return &InFlight{c: c}
}

// Begin counts one unit in and returns the call that counts it out.
func (f *InFlight) Begin(ctx context.Context, attrs ...attribute.KeyValue) (end func()) {
	opt := metric.WithAttributes(attrs...)
	f.c.Add(ctx, 1, opt)
	return func() { f.c.Add(ctx, -1, opt) }
}

// Attribute keys shared by the instruments.
var (
	AttrRole = attribute.Key("role")

	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")

	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBState     = attribute.Key("db.pool.state")

	AttrOrderStatus   = attribute.Key("order_status")
	AttrStatusFrom    = attribute.Key("from_status")
	AttrPaymentStatus = attribute.Key("payment_status")
	AttrPackageStatus = attribute.Key("package_status")
	AttrCoupon        = attribute.Key("coupon")
)

// Bucket boundaries.
var (
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	DBDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
	BodySizeBuckets     = []float64{100, 1e3, 1e4, 1e5, 1e6, 5e6, 1e7}
)
