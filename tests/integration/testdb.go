// Package integration runs the Shopping App against a real PostgreSQL started
// with testcontainers. The schema comes from the embedded migrations.
package integration

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/migration"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// postgresServer is the one container shared by every test in the package.
var postgresServer struct {
	sync.Mutex
	container *tcpostgres.PostgresContainer
	cfg       config.DatabaseConfig
}

// TestDB is a connection to the shared database with every table emptied.
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewTestDB starts and migrates the container on first use. Short runs skip.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test needs docker")
	}
	cfg := serverConfig(t)

	gormLog := logger.Discard
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLog = logger.Default.LogMode(logger.Info)
	}
	db, err := persistence.Open(context.Background(), &cfg, persistence.WithGormLogger(gormLog))
	require.NoError(t, err, "connect to test database")
	t.Cleanup(func() { _ = db.Close() })

	tdb := &TestDB{DB: db.DB, t: t}
	tdb.CleanTables()
	return tdb
}

func serverConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	postgresServer.Lock()
	defer postgresServer.Unlock()
	if postgresServer.container != nil {
		return postgresServer.cfg
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("shop"),
		tcpostgres.WithPassword("shop-test-pw"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:         host,
		Port:         port.Int(),
		User:         "shop",
		Password:     "shop-test-pw",
		DBName:       "shop_test",
		SSLMode:      "disable",
		MaxOpenConns: 20,
		MaxIdleConns: 5,
	}
	db, err := persistence.Open(ctx, &cfg, persistence.WithGormLogger(logger.Discard))
	require.NoError(t, err, "connect to fresh container")
	defer db.Close()

	m, err := migration.New(db.SQL(), nil)
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(), "apply migrations")

	postgresServer.container = container
	postgresServer.cfg = cfg
	return cfg
}

// CleanTables empties every application table in one statement.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(
		`SELECT quote_ident(tablename) FROM pg_tables WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`,
	).Scan(&tables).Error)
	if len(tables) == 0 {
		return
	}
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE").Error)
}

// CleanupSharedContainer stops the container; TestMain calls it last.
func CleanupSharedContainer() {
	postgresServer.Lock()
	defer postgresServer.Unlock()
	if postgresServer.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = postgresServer.container.Terminate(ctx)
	postgresServer.container = nil
}
