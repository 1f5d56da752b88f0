// Package table models an uploaded dataset as ordered columns of raw string
// cells. All cell values are strings as read from the file; semantic typing
// happens later in domain/column.
package table

import (
	"fmt"
	"strings"
)

// Row maps a column name to its raw cell value. A missing key or an empty
// string both mean the cell is absent.
type Row map[string]string

// Table is an uploaded dataset. The column set is established from the first
// row of the source file and is fixed for the lifetime of the table; later
// rows may be missing values but never introduce new columns.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// FromRecords builds a Table from a header row plus data records, the shape
// produced by csv.Reader.ReadAll and excelize GetRows. Records shorter than
// the header are padded with empty cells; trailing extra cells are dropped.
func FromRecords(headers []string, records [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("dataset has no columns")
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(h)
		if columns[i] == "" {
			columns[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnValues returns the raw cell values of one column in row order.
// Unknown columns yield an all-empty slice, matching rows that miss the cell.
func (t *Table) ColumnValues(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Selection is the set of columns the user has chosen for analysis.
// Order follows the order columns were chosen in.
type Selection []string

// MinSelection is the smallest selection an analysis submission accepts.
const MinSelection = 2

// Validate checks that the selection can be submitted against the table:
// at least two columns, all of them present, no duplicates.
func (s Selection) Validate(t *Table) error {
	if len(s) < MinSelection {
		return fmt.Errorf("select at least %d columns for analysis, got %d", MinSelection, len(s))
	}
	seen := make(map[string]bool, len(s))
	for _, col := range s {
		if seen[col] {
			return fmt.Errorf("column %q selected twice", col)
		}
		seen[col] = true
		if t != nil && !t.HasColumn(col) {
			return fmt.Errorf("column %q is not part of the dataset", col)
		}
	}
	return nil
}

// Contains reports whether col is part of the selection.
func (s Selection) Contains(col string) bool {
	for _, c := range s {
		if c == col {
			return true
		}
	}
	return false
}
