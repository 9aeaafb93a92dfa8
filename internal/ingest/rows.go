package ingest

import (
	"sort"
	"strconv"

	"github.com/alscodec/als/internal/table"
)

// TableFromRows builds a Table from rows keyed by column name, in
// columnOrder, reusing table.NewColumn's Kind-narrowing rule the same way
// the codec's own column construction does — this is the one piece every
// format-specific loader shares.
func TableFromRows(rows []map[string]string, columnOrder []string) (*table.Table, error) {
	cols := make([]table.Column, len(columnOrder))
	for i, name := range columnOrder {
		values := make([]table.Value, len(rows))
		for j, row := range rows {
			raw, present := row[name]
			if !present {
				values[j] = table.NullValue()
				continue
			}
			values[j] = parseCellValue(raw)
		}
		cols[i] = table.NewColumn(name, values)
	}
	return table.New(cols)
}

// parseCellValue infers the narrowest Value a text cell represents: Integer,
// then Float, then Boolean, else the string verbatim. An empty cell is the
// empty string, not Null — plain-text formats have no way to spell Null.
func parseCellValue(s string) table.Value {
	if s == "" {
		return table.StringValue("")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.IntegerValue(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.FloatValue(f)
	}
	if s == "true" || s == "false" {
		return table.BooleanValue(s == "true")
	}
	return table.StringValue(s)
}

// columnOrderFromRows collects the union of every row's keys, sorted, for
// formats (JSON) that don't carry an explicit header row and so have no
// natural column order to preserve.
func columnOrderFromRows(rows []map[string]string) []string {
	seen := map[string]bool{}
	var order []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Strings(order)
	return order
}
