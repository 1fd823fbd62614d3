// pkg/table/table.go
package table

import (
	"errors"
	"fmt"
	"strings"
)

// Table is an ordered collection of rows keyed by a fixed column set.
// The column set is established at construction and never changes; rows are
// appended during loading and the row count is immutable afterwards from the
// perspective of downstream stages, which always work on copies.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given column set.
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("table requires at least one column")
	}
	index := make(map[string]int, len(columns))
	cols := make([]string, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		index[name] = i
		cols[i] = name
	}
	return &Table{cols: cols, index: index}, nil
}

// AppendRow adds a row. The row must match the column set exactly.
func (t *Table) AppendRow(row []Value) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.cols))
	}
	copied := make([]Value, len(row))
	copy(copied, row)
	t.rows = append(t.rows, copied)
	return nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	i, ok := t.index[name]
	if !ok {
		return -1
	}
	return i
}

// Value returns the cell at (row, column).
func (t *Table) Value(row int, column string) (Value, error) {
	i, ok := t.index[column]
	if !ok {
		return Value{}, fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return Value{}, fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	return t.rows[row][i], nil
}

// Set replaces the cell at (row, column).
func (t *Table) Set(row int, column string, v Value) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range (%d rows)", row, len(t.rows))
	}
	t.rows[row][i] = v
	return nil
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// SetColumn replaces the named column in place.
func (t *Table) SetColumn(name string, values []Value) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("column has %d values, table has %d rows", len(values), len(t.rows))
	}
	for r := range t.rows {
		t.rows[r][i] = values[r]
	}
	return nil
}

// MissingCount returns the number of missing cells across the whole table.
func (t *Table) MissingCount() int {
	n := 0
	for _, row := range t.rows {
		for _, v := range row {
			if v.IsMissing() {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy. Stages that transform data operate on a clone
// so the caller's table is never mutated.
func (t *Table) Clone() *Table {
	out := &Table{
		cols:  append([]string(nil), t.cols...),
		index: make(map[string]int, len(t.index)),
		rows:  make([][]Value, len(t.rows)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for r, row := range t.rows {
		out.rows[r] = append([]Value(nil), row...)
	}
	return out
}

// DropColumns returns a copy of the table without the named columns.
// Unknown names are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]string, 0, len(t.cols))
	keptIdx := make([]int, 0, len(t.cols))
	for i, c := range t.cols {
		if !drop[c] {
			kept = append(kept, c)
			keptIdx = append(keptIdx, i)
		}
	}
	out, _ := New(kept)
	for _, row := range t.rows {
		newRow := make([]Value, len(keptIdx))
		for j, i := range keptIdx {
			newRow[j] = row[i]
		}
		out.rows = append(out.rows, newRow)
	}
	return out
}

// FilterRows returns a copy containing only rows where keep returns true.
func (t *Table) FilterRows(keep func(row []Value) bool) *Table {
	out := &Table{
		cols:  append([]string(nil), t.cols...),
		index: make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	for _, row := range t.rows {
		if keep(row) {
			out.rows = append(out.rows, append([]Value(nil), row...))
		}
	}
	return out
}

// Row returns a copy of a single row.
func (t *Table) Row(r int) []Value {
	return append([]Value(nil), t.rows[r]...)
}
