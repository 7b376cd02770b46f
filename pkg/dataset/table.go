// Package dataset provides the tabular model the matching engine borrows:
// ordered rows of named string columns, with CSV and GTFS loaders and a CSV
// writer for joined output.
package dataset

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is returned when a named column is absent from a table.
var ErrColumnNotFound = errors.New("dataset: column not found")

// Table is an ordered set of rows sharing one header. Cells are strings and
// missing values are empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a Table after validating that column names are unique and
// every row matches the header width.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("dataset: duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("dataset: row %d has %d cells, header has %d columns", i, len(row), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Column returns the values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// AppendRow adds one row, enforcing the header width.
func (t *Table) AppendRow(row []string) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("dataset: row has %d cells, header has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}
