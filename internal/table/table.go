package table

import "fmt"

// Table is an ordered sequence of Columns sharing a row count, with unique
// column names. It is immutable once built: the compression pipeline reads
// it but never mutates it in place.
type Table struct {
	Columns  []Column
	RowCount int
}

// New builds a Table from columns, validating the invariants from §3 of the
// data model: unique names and equal lengths across every column.
func New(columns []Column) (*Table, error) {
	rowCount := 0
	if len(columns) > 0 {
		rowCount = columns[0].Len()
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Len() != rowCount {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), rowCount)
		}
	}
	return &Table{Columns: columns, RowCount: rowCount}, nil
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row reconstructs the i-th row as a slice of values in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for ci, c := range t.Columns {
		row[ci] = c.Values[i]
	}
	return row
}

// Equal reports whether two tables have the same column names (in order),
// the same row count, and pairwise-equal values. Column Kind is not part of
// the comparison: it's a derived cache, not the payload the round-trip law
// is checked against.
func (t *Table) Equal(other *Table) bool {
	if t.RowCount != other.RowCount || len(t.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range t.Columns {
		oc := other.Columns[i]
		if c.Name != oc.Name || len(c.Values) != len(oc.Values) {
			return false
		}
		for j, v := range c.Values {
			if !v.Equal(oc.Values[j]) {
				return false
			}
		}
	}
	return true
}
