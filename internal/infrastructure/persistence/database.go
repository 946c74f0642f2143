package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the shop's PostgreSQL handle: the GORM session the repositories
// share plus the pool underneath it.
type Database struct {
	DB  *gorm.DB
	sql *sql.DB
}

// Option customises Open
type Option func(*gorm.Config)

// WithGormLogger routes GORM's query log through l
func WithGormLogger(l logger.Interface) Option {
	return func(c *gorm.Config) { c.Logger = l }
}

// Open connects to PostgreSQL, sizes the pool from cfg and pings once.
// Unique and foreign-key violations come back as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func Open(ctx context.Context, cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}
	for _, opt := range opts {
		opt(gormCfg)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	d := &Database{DB: db, sql: sqlDB}
	if err := d.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

// SQL returns the connection pool
func (d *Database) SQL() *sql.DB {
	return d.sql
}

// Ping checks the database is reachable. It backs the health endpoint.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.sql.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the pool
func (d *Database) Close() error {
	return d.sql.Close()
}
