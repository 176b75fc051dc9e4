// Package integration runs the work order queries against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/erp/outsourcing/internal/infrastructure/config"
	"github.com/erp/outsourcing/internal/infrastructure/migration"
	"github.com/erp/outsourcing/internal/infrastructure/persistence"
	"github.com/erp/outsourcing/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testDBName     = "erp_test"
	testDBUser     = "postgres"
	testDBPassword = "admin123"
)

// TestDB is a migrated PostgreSQL container plus the application's
// connection to it
type TestDB struct {
	Database  *persistence.Database
	Config    config.DatabaseConfig
	DSN       string
	Container testcontainers.Container
	t         *testing.T
}

// NewTestDB starts a fresh container, applies the embedded migrations and
// connects through persistence.NewDatabase. Everything is torn down on
// test cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testDBUser),
		tcpostgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	tdb := &TestDB{
		DSN:       dsn,
		Container: container,
		t:         t,
		Config: config.DatabaseConfig{
			Driver:          config.DriverPostgres,
			Host:            host,
			Port:            port.Int(),
			User:            testDBUser,
			Password:        testDBPassword,
			DBName:          testDBName,
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5,
			ConnMaxIdleTime: 5,
		},
	}

	tdb.Migrate(func(m *migration.Migrator) error { return m.Up() })

	db, err := persistence.NewDatabase(&tdb.Config)
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() { _ = db.Close() })
	tdb.Database = db

	return tdb
}

// Migrate runs fn with a migrator on its own connection. The migrator
// closes the connection it was given, so it never shares the app pool.
func (tdb *TestDB) Migrate(fn func(m *migration.Migrator) error) {
	tdb.t.Helper()

	sqlDB, err := sql.Open("postgres", tdb.DSN)
	require.NoError(tdb.t, err)

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(tdb.t, err, "Failed to create migrator")
	defer m.Close()

	require.NoError(tdb.t, fn(m))
}

// Exec runs seed statements in order
func (tdb *TestDB) Exec(statements ...string) {
	tdb.t.Helper()
	for _, stmt := range statements {
		require.NoError(tdb.t, tdb.Database.DB.Exec(stmt).Error, stmt)
	}
}
