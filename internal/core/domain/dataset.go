package domain

import (
	"fmt"
	"strings"
)

// Row is a single record: a mapping from column name to value.
// A nil value marks a null field, not an absent column.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StringValue returns the value of a column rendered as a string.
// It reports false when the column is absent or holds a null.
func (r Row) StringValue(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// Dataset is an ordered sequence of rows sharing one column set.
// Row order is significant and preserved end-to-end. A dataset is
// never mutated in place once produced; enrichment builds a new one.
type Dataset struct {
	// Columns lists the column names in their stable display order.
	Columns []string

	// Rows holds the records in source order.
	Rows []Row
}

// NewDataset creates an empty dataset with the given column order.
func NewDataset(columns []string) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{Columns: cols, Rows: make([]Row, 0)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset's column set contains name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row at the end of the dataset.
func (d *Dataset) Append(row Row) {
	d.Rows = append(d.Rows, row)
}

// ColumnList renders the column set for error messages.
func (d *Dataset) ColumnList() string {
	return "[" + strings.Join(d.Columns, ", ") + "]"
}
