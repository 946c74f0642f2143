package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxLoggedSQL bounds the statement text kept in a log entry unless FullSQL is set
const maxLoggedSQL = 512

// QueryLogConfig controls which statements the query logger writes
type QueryLogConfig struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
	// FullSQL keeps statements untruncated
	FullSQL bool
	// LogNotFound logs lookups that matched no row; off by default since
	// every 404 starts as one
	LogNotFound bool
}

// QueryLogger writes GORM statements to zap. Failed statements go out at
// error level except constraint violations, which the repositories turn into
// domain conflicts and are logged as warnings.
type QueryLogger struct {
	log *zap.Logger
	cfg QueryLogConfig
}

var _ gormlogger.Interface = (*QueryLogger)(nil)

// NewGormLogger returns a query logger named "gorm". A zero SlowThreshold
// means 200ms.
func NewGormLogger(log *zap.Logger, cfg QueryLogConfig) *QueryLogger {
	if cfg.SlowThreshold == 0 {
		cfg.SlowThreshold = 200 * time.Millisecond
	}
	return &QueryLogger{log: log.Named("gorm"), cfg: cfg}
}

func (l *QueryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.cfg.Level = level
	return &clone
}

func (l *QueryLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.scoped(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *QueryLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.scoped(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *QueryLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.scoped(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace is called by GORM once per statement
func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var (
		lvl zapcore.Level
		msg string
	)
	switch {
	case err != nil:
		if errors.Is(err, gorm.ErrRecordNotFound) && !l.cfg.LogNotFound {
			return
		}
		lvl, msg = zapcore.ErrorLevel, "query failed"
		if isConstraintViolation(err) || errors.Is(err, gorm.ErrRecordNotFound) {
			lvl, msg = zapcore.WarnLevel, "query rejected"
		}
	case elapsed > l.cfg.SlowThreshold:
		lvl, msg = zapcore.WarnLevel, "slow query"
	default:
		lvl, msg = zapcore.DebugLevel, "query"
	}
	if !l.enabled(lvl) {
		return
	}

	statement, rows := fc()
	if !l.cfg.FullSQL && len(statement) > maxLoggedSQL {
		statement = statement[:maxLoggedSQL] + "..."
	}
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", statement),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if lvl == zapcore.WarnLevel && err == nil {
		fields = append(fields, zap.Duration("threshold", l.cfg.SlowThreshold))
	}
	l.scoped(ctx).Log(lvl, msg, fields...)
}

// enabled maps a zap level onto the GORM level the logger runs at
func (l *QueryLogger) enabled(lvl zapcore.Level) bool {
	switch {
	case lvl >= zapcore.ErrorLevel:
		return l.cfg.Level >= gormlogger.Error
	case lvl == zapcore.WarnLevel:
		return l.cfg.Level >= gormlogger.Warn
	default:
		return l.cfg.Level >= gormlogger.Info
	}
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// scoped adds the trace, request and caller fields carried by ctx
func (l *QueryLogger) scoped(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.log
	}
	log := WithTraceContext(ctx, l.log)
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if caller, ok := GetCaller(ctx); ok {
		log = log.With(zap.String("user_id", caller.UserID))
	}
	return log
}

// MapGormLogLevel turns the configured log level into a GORM level. Debug and
// info both log every statement; anything unknown logs warnings and errors.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	}
	return gormlogger.Warn
}
