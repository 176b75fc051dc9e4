package persistence

import (
	"context"
	"testing"

	"github.com/erp/outsourcing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestDialectorFor(t *testing.T) {
	cases := []struct {
		driver string
		name   string
	}{
		{config.DriverPostgres, "postgres"},
		{"", "postgres"},
		{config.DriverMySQL, "mysql"},
		{config.DriverSQLite, "sqlite"},
	}

	for _, tc := range cases {
		t.Run("driver "+tc.driver, func(t *testing.T) {
			d, err := dialectorFor(&config.DatabaseConfig{Driver: tc.driver, Path: ":memory:"})
			require.NoError(t, err)
			assert.Equal(t, tc.name, d.Name())
		})
	}

	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := dialectorFor(&config.DatabaseConfig{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported database driver "oracle"`)
	})
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	}

	db, err := NewDatabase(cfg, WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, db.Driver())
	assert.NoError(t, db.Ping(context.Background()))

	var one int
	require.NoError(t, db.DB.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(context.Background()), "ping after close fails")
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	assert.Nil(t, db)
	assert.Error(t, err)
}
