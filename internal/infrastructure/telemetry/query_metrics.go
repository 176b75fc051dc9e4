package telemetry

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const unnamedQuery = "unnamed"

// QueryMetricsConfig holds report query metric settings.
type QueryMetricsConfig struct {
	SlowQueryThreshold time.Duration
	PoolStatsInterval  time.Duration
}

// QueryMetrics records report query counts, latency and result sizes, and
// samples the connection pool.
type QueryMetrics struct {
	queryTotal      *Counter
	slowQueryTotal  *Counter
	queryDuration   *Histogram
	rowsReturned    *Histogram
	poolConnections *Gauge

	config   QueryMetricsConfig
	logger   *zap.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewQueryMetrics creates the report query instruments on meter.
func NewQueryMetrics(meter metric.Meter, cfg QueryMetricsConfig, logger *zap.Logger) (*QueryMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold == 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	queryTotal, err := NewCounter(meter, "report_query_total", "Report queries executed by query and status", "{query}")
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter, "report_slow_query_total", "Report queries slower than the slow threshold", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "report_query_duration_seconds",
		Description: "Report query latency in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	rowsReturned, err := NewHistogram(meter, HistogramOpts{
		Name:        "report_query_rows",
		Description: "Rows returned per report query",
		Unit:        "{row}",
		Boundaries:  RowCountBuckets,
	})
	if err != nil {
		return nil, err
	}
	poolConnections, err := NewGauge(meter, "db_pool_connections", "Connections in the pool by state", "{connection}")
	if err != nil {
		return nil, err
	}

	return &QueryMetrics{
		queryTotal:      queryTotal,
		slowQueryTotal:  slowQueryTotal,
		queryDuration:   queryDuration,
		rowsReturned:    rowsReturned,
		poolConnections: poolConnections,
		config:          cfg,
		logger:          logger,
		stopCh:          make(chan struct{}),
	}, nil
}

// RecordQuery records one executed query. Row counts are recorded only for
// successful queries.
func (m *QueryMetrics) RecordQuery(ctx context.Context, name string, duration time.Duration, rows int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.queryTotal.Inc(ctx, AttrQueryName.String(name), AttrQueryStatus.String(status))
	m.queryDuration.RecordDuration(ctx, duration, AttrQueryName.String(name))
	if err == nil {
		m.rowsReturned.Record(ctx, float64(rows), AttrQueryName.String(name))
	}
	if duration > m.config.SlowQueryThreshold {
		m.slowQueryTotal.Inc(ctx, AttrQueryName.String(name))
	}
}

// StartPoolStatsCollection samples sqlDB pool stats until Stop or ctx ends.
func (m *QueryMetrics) StartPoolStatsCollection(ctx context.Context, sqlDB *sql.DB) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.recordPoolStats(ctx, sqlDB)
		for {
			select {
			case <-ticker.C:
				m.recordPoolStats(ctx, sqlDB)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	m.logger.Info("Started connection pool stats collection",
		zap.Duration("interval", m.config.PoolStatsInterval),
	)
}

func (m *QueryMetrics) recordPoolStats(ctx context.Context, sqlDB *sql.DB) {
	stats := sqlDB.Stats()
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop ends pool stats collection. Safe to call more than once.
func (m *QueryMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
	})
}

type queryNameKey struct{}

// ContextWithQueryName labels the queries run under ctx for metrics
func ContextWithQueryName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, queryNameKey{}, name)
}

func queryNameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(queryNameKey{}).(string); ok && name != "" {
		return name
	}
	return unnamedQuery
}

// InstrumentedQueryExecutor records QueryMetrics around another executor.
type InstrumentedQueryExecutor struct {
	next    outsourcing.QueryExecutor
	metrics *QueryMetrics
}

// NewInstrumentedQueryExecutor wraps next with query metrics
func NewInstrumentedQueryExecutor(next outsourcing.QueryExecutor, metrics *QueryMetrics) *InstrumentedQueryExecutor {
	return &InstrumentedQueryExecutor{next: next, metrics: metrics}
}

// Execute implements outsourcing.QueryExecutor
func (e *InstrumentedQueryExecutor) Execute(ctx context.Context, query string, params ...any) (*outsourcing.ResultSet, error) {
	start := time.Now()
	rs, err := e.next.Execute(ctx, query, params...)

	rows := 0
	if rs != nil {
		rows = rs.Len()
	}
	e.metrics.RecordQuery(ctx, queryNameFromContext(ctx), time.Since(start), rows, err)
	return rs, err
}
