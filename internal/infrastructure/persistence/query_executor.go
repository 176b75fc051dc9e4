package persistence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/erp/outsourcing/internal/domain/outsourcing"
	"gorm.io/gorm"
)

// Layouts the host ERP uses when it renders dates and timestamps as text
const (
	hostDateLayout     = "1/2/2006"
	hostDateTimeLayout = "1/2/2006 3:04 pm"
)

// GormQueryExecutor runs raw report queries through gorm and returns every
// column as text, the way the host query engine does.
type GormQueryExecutor struct {
	db      *gorm.DB
	timeout time.Duration
}

// ExecutorOption configures a GormQueryExecutor
type ExecutorOption func(*GormQueryExecutor)

// WithQueryTimeout bounds each query. Zero leaves the caller's context alone.
func WithQueryTimeout(timeout time.Duration) ExecutorOption {
	return func(e *GormQueryExecutor) {
		e.timeout = timeout
	}
}

// NewGormQueryExecutor creates a new GormQueryExecutor
func NewGormQueryExecutor(db *gorm.DB, opts ...ExecutorOption) *GormQueryExecutor {
	e := &GormQueryExecutor{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute implements outsourcing.QueryExecutor
func (e *GormQueryExecutor) Execute(ctx context.Context, query string, params ...any) (*outsourcing.ResultSet, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rows, err := e.db.WithContext(ctx).Raw(query, params...).Rows()
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}
	for i, col := range columns {
		columns[i] = strings.ToLower(col)
	}

	dbTypes := make([]string, len(columns))
	if columnTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range columnTypes {
			dbTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	result := make([]outsourcing.Row, 0)
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		row := make(outsourcing.Row, len(columns))
		for i, col := range columns {
			row[col] = toText(values[i], dbTypes[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}

	return outsourcing.NewResultSet(columns, result), nil
}

// toText renders a scanned driver value as the host engine would.
// NULL stays nil and booleans become 'T'/'F'. Times are rendered by the
// column's database type, see formatHostTime.
func toText(value any, dbType string) *string {
	var s string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int:
		s = strconv.Itoa(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			s = outsourcing.FlagTrue
		} else {
			s = outsourcing.FlagFalse
		}
	case time.Time:
		s = formatHostTime(v, dbType)
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

// formatHostTime uses the date layout for DATE columns and the date-time
// layout for any other typed column. Drivers that report no type fall back
// to dropping a midnight time part.
func formatHostTime(t time.Time, dbType string) string {
	switch dbType {
	case "DATE":
		return t.Format(hostDateLayout)
	case "":
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(hostDateLayout)
		}
	}
	return t.Format(hostDateTimeLayout)
}
