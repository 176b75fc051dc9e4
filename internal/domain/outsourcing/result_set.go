package outsourcing

import "context"

// Row is one result row keyed by lower-cased column name.
// A nil value means the column was NULL.
type Row map[string]*string

// Get returns the column value, nil when absent or NULL
func (r Row) Get(column string) *string {
	return r[column]
}

// Flag reports whether a 'T'/'F' column is set. Absent and NULL read as false.
func (r Row) Flag(column string) bool {
	v := r[column]
	return v != nil && *v == FlagTrue
}

// ResultSet holds the rows returned by one query in engine order
type ResultSet struct {
	columns []string
	rows    []Row
}

// NewResultSet creates a result set from column names and rows
func NewResultSet(columns []string, rows []Row) *ResultSet {
	return &ResultSet{
		columns: columns,
		rows:    rows,
	}
}

// Columns returns the column names in select order
func (rs *ResultSet) Columns() []string {
	if rs == nil {
		return nil
	}
	return rs.columns
}

// Len returns the number of rows
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rows)
}

// AsMappedResults returns every row as a column-keyed map, preserving the
// order the engine produced them in. The result is never nil.
func (rs *ResultSet) AsMappedResults() []Row {
	if rs == nil || rs.rows == nil {
		return []Row{}
	}
	return rs.rows
}

// QueryExecutor runs a parameterized query against the business database.
// Placeholders are written as '?' and bound positionally from params.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, params ...any) (*ResultSet, error)
}

// QueryExecutorFunc adapts a function to QueryExecutor
type QueryExecutorFunc func(ctx context.Context, query string, params ...any) (*ResultSet, error)

// Execute calls f
func (f QueryExecutorFunc) Execute(ctx context.Context, query string, params ...any) (*ResultSet, error) {
	return f(ctx, query, params...)
}
