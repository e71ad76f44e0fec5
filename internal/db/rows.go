package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vvka-141/mkdb/pkg/mkdb"
)

// nullDisplay is how a NULL value renders in a ResultSet.
const nullDisplay = "NULL"

// readResultSet drains the first result set of rows into display strings.
func readResultSet(rows *sql.Rows) (*mkdb.ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	rs := &mkdb.ResultSet{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = displayValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// displayValue renders a driver value the way a results grid would.
func displayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return nullDisplay
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

// commandResult is the ResultSet reported for statements that return no rows.
func commandResult(tag string) *mkdb.ResultSet {
	return &mkdb.ResultSet{
		Columns: []string{mkdb.NoErrorColumn},
		Rows:    [][]string{{tag}},
	}
}
