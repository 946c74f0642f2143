package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls GORM instrumentation.
type DBConfig struct {
	TraceEnabled      bool          // register otelgorm spans
	LogFullSQL        bool          // keep bind variables in span statements
	SlowQueryThresh   time.Duration // default 200ms
	PoolStatsInterval time.Duration // default 15s
}

type dbContextKey struct{}

// DBInstrumentation records query metrics, flags slow queries and reports
// connection pool usage for a GORM database.
type DBInstrumentation struct {
	config DBConfig
	logger *zap.Logger

	queryTotal         *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter
	poolConnections    *Gauge
	poolConnectionsMax *Gauge

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDBInstrumentation creates the database instruments on meter.
func NewDBInstrumentation(meter metric.Meter, cfg DBConfig, logger *zap.Logger) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh == 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	in := NewInstruments(meter)
	d := &DBInstrumentation{
		config:             cfg,
		logger:             logger,
		stopCh:             make(chan struct{}),
		queryTotal:         in.Counter("db_query_total", "Database queries by operation", "{query}"),
		queryDuration:      in.Histogram("db_query_duration_seconds", "Database query latency", "s", DBDurationBuckets...),
		slowQueryTotal:     in.Counter("db_slow_query_total", "Queries slower than the slow query threshold", "{query}"),
		poolConnections:    in.Gauge("db_pool_connections", "Pool connections by state", "{connection}"),
		poolConnectionsMax: in.Gauge("db_pool_connections_max", "Maximum open connections", "{connection}"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Register installs the otelgorm plugin (when tracing is enabled) and the
// timing callbacks on db.
func (d *DBInstrumentation) Register(db *gorm.DB) error {
	if d.config.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
		if !d.config.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	cb := db.Callback()
	err := errors.Join(
		cb.Create().Before("gorm:create").Register("telemetry:before_create", d.before),
		cb.Create().After("gorm:create").Register("telemetry:after_create", d.after("INSERT")),
		cb.Query().Before("gorm:query").Register("telemetry:before_query", d.before),
		cb.Query().After("gorm:query").Register("telemetry:after_query", d.after("SELECT")),
		cb.Update().Before("gorm:update").Register("telemetry:before_update", d.before),
		cb.Update().After("gorm:update").Register("telemetry:after_update", d.after("UPDATE")),
		cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", d.before),
		cb.Delete().After("gorm:delete").Register("telemetry:after_delete", d.after("DELETE")),
		cb.Row().Before("gorm:row").Register("telemetry:before_row", d.before),
		cb.Row().After("gorm:row").Register("telemetry:after_row", d.after("")),
		cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", d.before),
		cb.Raw().After("gorm:raw").Register("telemetry:after_raw", d.after("")),
	)
	if err != nil {
		return err
	}

	d.logger.Info("Database instrumentation registered",
		zap.Bool("tracing", d.config.TraceEnabled),
		zap.Duration("slow_query_threshold", d.config.SlowQueryThresh),
	)
	return nil
}

func (d *DBInstrumentation) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, dbContextKey{}, time.Now())
}

// after records the query; an empty operation is detected from the SQL text.
func (d *DBInstrumentation) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(dbContextKey{}).(time.Time)
		if !ok {
			return
		}
		op := operation
		if op == "" {
			op = detectOperation(db.Statement.SQL.String())
		}
		d.RecordQuery(ctx, op, db.Statement.Table, time.Since(start), db.Error)
	}
}

// RecordQuery records one query and annotates the active span when it is slow or failed.
func (d *DBInstrumentation) RecordQuery(ctx context.Context, operation, table string, elapsed time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	if table == "" {
		table = "unknown"
	}

	d.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	d.queryDuration.RecordDuration(ctx, elapsed, AttrDBOperation.String(operation))

	span := trace.SpanFromContext(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && span.IsRecording() {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}

	if elapsed <= d.config.SlowQueryThresh {
		return
	}
	d.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
	d.logger.Warn("Slow query",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Duration("elapsed", elapsed),
	)
}

func detectOperation(sqlText string) string {
	fields := strings.Fields(sqlText)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	switch op := strings.ToUpper(fields[0]); op {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "WITH":
		return op
	default:
		return "OTHER"
	}
}

// StartPoolStats samples sqlDB.Stats() every PoolStatsInterval until Stop
// is called or ctx ends.
func (d *DBInstrumentation) StartPoolStats(ctx context.Context, sqlDB *sql.DB) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.config.PoolStatsInterval)
		defer ticker.Stop()

		for {
			d.collectPoolStats(ctx, sqlDB)
			select {
			case <-ticker.C:
			case <-d.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (d *DBInstrumentation) collectPoolStats(ctx context.Context, sqlDB *sql.DB) {
	stats := sqlDB.Stats()
	d.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	d.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	d.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	d.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop ends pool stats collection. It is idempotent.
func (d *DBInstrumentation) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
		d.wg.Wait()
	})
}
