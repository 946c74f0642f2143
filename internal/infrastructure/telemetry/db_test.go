package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type sampleRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openInstrumentedDB(t *testing.T, cfg telemetry.DBConfig, logger *zap.Logger) (*gorm.DB, *telemetry.DBInstrumentation, *sdkmetric.ManualReader) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&sampleRow{}))

	mp, reader := newTestMeter()
	inst, err := telemetry.NewDBInstrumentation(mp.Meter("test"), cfg, logger)
	require.NoError(t, err)
	require.NoError(t, inst.Register(db))

	return db, inst, reader
}

func TestDBInstrumentation_RecordsQueries(t *testing.T) {
	db, _, reader := openInstrumentedDB(t, telemetry.DBConfig{SlowQueryThresh: time.Hour}, zap.NewNop())

	require.NoError(t, db.Create(&sampleRow{Name: "kurta"}).Error)
	var rows []sampleRow
	require.NoError(t, db.Find(&rows).Error)
	require.NoError(t, db.Model(&sampleRow{}).Where("name = ?", "kurta").Update("name", "saree").Error)
	require.NoError(t, db.Delete(&sampleRow{}, 1).Error)

	assert.Equal(t, int64(4), intSum(t, reader, "db_query_total"))
	assert.Zero(t, intSum(t, reader, "db_slow_query_total"))
}

func TestDBInstrumentation_SlowQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	db, _, reader := openInstrumentedDB(t, telemetry.DBConfig{SlowQueryThresh: time.Nanosecond}, zap.New(core))

	var rows []sampleRow
	require.NoError(t, db.Find(&rows).Error)

	assert.Equal(t, int64(1), intSum(t, reader, "db_slow_query_total"))
	entries := recorded.FilterMessage("Slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SELECT", entries[0].ContextMap()["operation"])
	assert.Equal(t, "sample_rows", entries[0].ContextMap()["table"])
}

func TestDBInstrumentation_RawQueryOperation(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	db, _, _ := openInstrumentedDB(t, telemetry.DBConfig{SlowQueryThresh: time.Nanosecond}, zap.New(core))

	require.NoError(t, db.Exec("UPDATE sample_rows SET name = ?", "dupatta").Error)

	entries := recorded.FilterMessage("Slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "UPDATE", entries[0].ContextMap()["operation"])
}

func TestDBInstrumentation_PoolStats(t *testing.T) {
	db, inst, reader := openInstrumentedDB(t, telemetry.DBConfig{PoolStatsInterval: 10 * time.Millisecond}, zap.NewNop())
	sqlDB, err := db.DB()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	inst.StartPoolStats(ctx, sqlDB)
	time.Sleep(30 * time.Millisecond)

	inst.Stop()
	inst.Stop()

	m, ok := collect(t, reader, "db_pool_connections_max")
	require.True(t, ok)
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(1), gauge.DataPoints[0].Value)
}

func TestDBInstrumentation_RecordQueryDefaults(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	mp, reader := newTestMeter()
	inst, err := telemetry.NewDBInstrumentation(mp.Meter("test"), telemetry.DBConfig{}, zap.New(core))
	require.NoError(t, err)

	inst.RecordQuery(context.Background(), "", "", time.Second, nil)
	inst.RecordQuery(context.Background(), "select", "orders", time.Millisecond, nil)

	assert.Equal(t, int64(2), intSum(t, reader, "db_query_total"))
	assert.Equal(t, int64(1), intSum(t, reader, "db_slow_query_total"))
	entries := recorded.FilterMessage("Slow query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "UNKNOWN", entries[0].ContextMap()["operation"])
	assert.Equal(t, "unknown", entries[0].ContextMap()["table"])
}
