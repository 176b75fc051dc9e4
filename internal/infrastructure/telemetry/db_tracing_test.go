package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTracedSQLite(t *testing.T, cfg DBTracingConfig) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Exec(`CREATE TABLE vendors (id INTEGER PRIMARY KEY, companyname VARCHAR(255))`).Error)
	require.NoError(t, db.Exec(`INSERT INTO vendors (id, companyname) VALUES (622, 'ABC Manufacturing')`).Error)

	require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).RegisterOtelGorm(db))
	return db
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := newTracedSQLite(t, DBTracingConfig{Enabled: false})

	var name string
	require.NoError(t, db.Raw(`SELECT companyname FROM vendors WHERE id = ?`, 622).Scan(&name).Error)
	assert.Equal(t, "ABC Manufacturing", name)
	assert.Empty(t, recorder.Ended())
}

func TestDBTracingPlugin_RowsQuery(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := newTracedSQLite(t, DBTracingConfig{Enabled: true, DBSystem: "sqlite"})

	ctx, parent := StartSpan(context.Background(), "outsourced_work_order.list")
	rows, err := db.WithContext(ctx).Raw(`SELECT id, companyname FROM vendors WHERE id = ?`, "622").Rows()
	require.NoError(t, err)
	require.True(t, rows.Next())
	require.NoError(t, rows.Close())
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	dbSpan := ended[0]
	assert.Equal(t, parent.SpanContext().SpanID(), dbSpan.Parent().SpanID())
	assert.NotEqual(t, codes.Error, dbSpan.Status().Code)
}

func TestDBTracingPlugin_ErrorMarksSpan(t *testing.T) {
	recorder := useSpanRecorder(t)
	db := newTracedSQLite(t, DBTracingConfig{Enabled: true, DBSystem: "sqlite"})

	_, err := db.WithContext(context.Background()).Raw(`SELECT id FROM missing_table`).Rows()
	require.Error(t, err)

	ended := recorder.Ended()
	require.NotEmpty(t, ended)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestNewDBTracingPlugin_DefaultThreshold(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
}
