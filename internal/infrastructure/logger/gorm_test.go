package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observedQueryLogger(cfg QueryLogConfig) (*QueryLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), cfg), recorded
}

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestQueryLogger_Trace(t *testing.T) {
	queryErr := errors.New("relation \"orders\" does not exist")

	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		wantMsg string
		wantLvl zapcore.Level
	}{
		{"select at info", gormlogger.Info, time.Now(), nil, "query", zapcore.DebugLevel},
		{"select at warn", gormlogger.Warn, time.Now(), nil, "", 0},
		{"slow select", gormlogger.Warn, time.Now().Add(-time.Second), nil, "slow query", zapcore.WarnLevel},
		{"failed", gormlogger.Error, time.Now(), queryErr, "query failed", zapcore.ErrorLevel},
		{"duplicate coupon code", gormlogger.Warn, time.Now(), gorm.ErrDuplicatedKey, "query rejected", zapcore.WarnLevel},
		{"duplicate at error level", gormlogger.Error, time.Now(), gorm.ErrDuplicatedKey, "", 0},
		{"not found", gormlogger.Info, time.Now(), gorm.ErrRecordNotFound, "", 0},
		{"silent", gormlogger.Silent, time.Now(), queryErr, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ql, recorded := observedQueryLogger(QueryLogConfig{Level: tt.level})
			ql.Trace(context.Background(), tt.begin, statement(`SELECT * FROM "orders"`, 3), tt.err)

			if tt.wantMsg == "" {
				assert.Zero(t, recorded.Len())
				return
			}
			require.Equal(t, 1, recorded.Len())
			entry := recorded.All()[0]
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, tt.wantLvl, entry.Level)
			assert.Equal(t, "gorm", entry.LoggerName)
			assert.Equal(t, int64(3), entry.ContextMap()["rows"])
		})
	}
}

func TestQueryLogger_LogNotFound(t *testing.T) {
	ql, recorded := observedQueryLogger(QueryLogConfig{Level: gormlogger.Warn, LogNotFound: true})
	ql.Trace(context.Background(), time.Now(), statement(`SELECT * FROM "coupons" WHERE code = 'SAVE10'`, 0), gorm.ErrRecordNotFound)

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
}

func TestQueryLogger_TruncatesStatements(t *testing.T) {
	long := "INSERT INTO variants VALUES " + strings.Repeat("(?),", 300)

	ql, recorded := observedQueryLogger(QueryLogConfig{Level: gormlogger.Info})
	ql.Trace(context.Background(), time.Now(), statement(long, 300), nil)
	logged := recorded.All()[0].ContextMap()["sql"].(string)
	assert.Len(t, logged, maxLoggedSQL+3)
	assert.True(t, strings.HasSuffix(logged, "..."))

	ql, recorded = observedQueryLogger(QueryLogConfig{Level: gormlogger.Info, FullSQL: true})
	ql.Trace(context.Background(), time.Now(), statement(long, 300), nil)
	assert.Equal(t, long, recorded.All()[0].ContextMap()["sql"])
}

func TestQueryLogger_ContextFields(t *testing.T) {
	ql, recorded := observedQueryLogger(QueryLogConfig{Level: gormlogger.Info})

	ctx := context.WithValue(context.Background(), requestIDKey, "req-7")
	ctx = context.WithValue(ctx, callerKey, Caller{UserID: "u-42", Role: "customer"})
	ql.Trace(ctx, time.Now(), statement(`SELECT * FROM "orders" WHERE customer_id = 'u-42'`, 1), nil)

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "u-42", fields["user_id"])
}

func TestQueryLogger_Printf(t *testing.T) {
	ql, recorded := observedQueryLogger(QueryLogConfig{Level: gormlogger.Warn})

	ql.Info(context.Background(), "migrated %d tables", 4)
	ql.Warn(context.Background(), "pool exhausted after %s", "5s")
	ql.Error(context.Background(), "connection lost")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "pool exhausted after 5s", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestQueryLogger_LogMode(t *testing.T) {
	ql, _ := observedQueryLogger(QueryLogConfig{Level: gormlogger.Info})
	quiet := ql.LogMode(gormlogger.Silent).(*QueryLogger)

	assert.Equal(t, gormlogger.Info, ql.cfg.Level)
	assert.Equal(t, gormlogger.Silent, quiet.cfg.Level)
	assert.Equal(t, 200*time.Millisecond, quiet.cfg.SlowThreshold)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("verbose"))
}
