package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*GormLogger)(nil)

const listSQL = "SELECT wo.id FROM transactions wo WHERE wo.entity = '622'"

func sqlFunc() (string, int64) { return listSQL, 2 }

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)
	clone, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLogger_Messages(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn)

	gl.Info(context.Background(), "opened %s", "pool")
	gl.Warn(context.Background(), "retry %d", 1)
	gl.Error(context.Background(), "failed %s", "ping")

	entries := recorded.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "retry 1", entries[0].Message)
	assert.Equal(t, "failed ping", entries[1].Message)
	assert.Equal(t, "gorm", entries[0].LoggerName)
}

func TestGormLogger_Trace(t *testing.T) {
	queryErr := errors.New(`relation "transactions" does not exist`)

	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		opts      []GormLoggerOption
		begin     time.Time
		err       error
		wantMsg   string
		wantLevel zapcore.Level
		wantSQL   bool
	}{
		{
			name:      "error includes sql",
			level:     gormlogger.Error,
			begin:     time.Now(),
			err:       queryErr,
			wantMsg:   "SQL Error",
			wantLevel: zapcore.ErrorLevel,
			wantSQL:   true,
		},
		{
			name:      "slow query omits sql by default",
			level:     gormlogger.Warn,
			opts:      []GormLoggerOption{WithSlowThreshold(10 * time.Millisecond)},
			begin:     time.Now().Add(-time.Second),
			wantMsg:   "SLOW SQL >= 10ms",
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "info level logs every query at debug",
			level:     gormlogger.Info,
			opts:      []GormLoggerOption{WithFullSQL(true)},
			begin:     time.Now(),
			wantMsg:   "SQL Query",
			wantLevel: zapcore.DebugLevel,
			wantSQL:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			gl := NewGormLogger(zap.New(core), tt.level, tt.opts...)

			ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")
			gl.Trace(ctx, tt.begin, sqlFunc, tt.err)

			entries := recorded.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantMsg, entries[0].Message)
			assert.Equal(t, tt.wantLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.EqualValues(t, 2, fields["rows"])
			assert.Equal(t, "req-9", fields["request_id"])
			if tt.wantSQL {
				assert.Equal(t, listSQL, fields["sql"])
			} else {
				assert.NotContains(t, fields, "sql")
			}
		})
	}
}

func TestGormLogger_TraceQuiet(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	NewGormLogger(zap.New(core), gormlogger.Silent).Trace(context.Background(), time.Now(), sqlFunc, errors.New("x"))
	NewGormLogger(zap.New(core), gormlogger.Warn).Trace(context.Background(), time.Now(), sqlFunc, nil)

	assert.Equal(t, 0, recorded.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("bogus"))
}
