package telemetry

import (
	"context"
	"errors"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Telemetry bundles the providers started from one TelemetryConfig.
type Telemetry struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	logger   *zap.Logger
}

// SetupOption adjusts Setup.
type SetupOption func(*Collector)

// WithServiceVersion reports version as service.version on every signal.
func WithServiceVersion(version string) SetupOption {
	return func(c *Collector) { c.ServiceVersion = version }
}

// Setup starts every provider cfg enables. Tracing, metrics and logs all
// require cfg.Enabled; the profiler only needs ProfilerEnabled. On error the
// providers already started are shut down.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger, opts ...SetupOption) (*Telemetry, error) {
	collector := Collector{
		Endpoint:    cfg.CollectorEndpoint,
		Insecure:    cfg.Insecure,
		ServiceName: cfg.ServiceName,
	}
	for _, opt := range opts {
		opt(&collector)
	}

	t := &Telemetry{logger: logger}
	var err error
	if t.Tracer, err = NewTracerProvider(ctx, TraceConfig{
		Collector:     collector,
		Enabled:       cfg.Enabled,
		SamplingRatio: cfg.SamplingRatio,
	}, logger); err != nil {
		return nil, err
	}
	if t.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Collector: collector,
		Enabled:   cfg.Enabled && cfg.MetricsEnabled,
		Interval:  cfg.MetricsInterval,
	}, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Collector: collector,
		Enabled:   cfg.Enabled && cfg.LogsEnabled,
	}, logger); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}

	t.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilerEnabled,
		ServerAddress:   cfg.ProfilerEndpoint,
		ApplicationName: cfg.ServiceName,
	}, logger)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if t.Profiler.IsEnabled() {
		if err := t.Tracer.EnableSpanProfiles(); err != nil {
			logger.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	return t, nil
}

// DBConfigFrom derives the GORM instrumentation settings from cfg.
func DBConfigFrom(cfg config.TelemetryConfig) DBConfig {
	return DBConfig{
		TraceEnabled:    cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: cfg.DBSlowQueryThresh,
	}
}

// AppMeter returns the meter application instruments are created on.
func (t *Telemetry) AppMeter() metric.Meter {
	return t.Meter.Meter(TracerName)
}

// Shutdown stops the profiler and flushes every provider. Logs go last so
// shutdown messages from the other providers are still exported.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.Profiler != nil {
		errs = append(errs, t.Profiler.Stop())
	}
	if t.Tracer != nil {
		errs = append(errs, t.Tracer.Shutdown(ctx))
	}
	if t.Meter != nil {
		errs = append(errs, t.Meter.Shutdown(ctx))
	}
	if t.Logs != nil {
		errs = append(errs, t.Logs.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
