package table

// ColumnKind is the narrowest Value kind that covers every non-null cell of
// a column, in the order Integer subset Float, Boolean when every non-null
// cell is Boolean, otherwise String. An
// all-null column is KindString by convention: there is no non-null cell to
// narrow from.
type ColumnKind = Kind

// Column is ordered name + inferred kind + values. Columns preserve
// insertion order; positional correspondence across the columns of a Table
// defines its rows.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []Value
}

// NewColumn builds a Column from already-typed values, inferring Kind.
func NewColumn(name string, values []Value) Column {
	return Column{Name: name, Kind: inferKind(values), Values: values}
}

// inferKind narrows to Integer if every non-null cell is Integer, to Float
// if every non-null cell is Integer or Float (with at least one Float), to
// Boolean if every non-null cell is Boolean, and to String otherwise
// (including an all-null column, which has no non-null cell to narrow from).
func inferKind(values []Value) ColumnKind {
	sawNonNull := false
	sawFloat := false
	allNumeric := true
	allBoolean := true
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		sawNonNull = true
		switch v.Kind() {
		case KindInteger:
			allBoolean = false
		case KindFloat:
			allBoolean = false
			sawFloat = true
		case KindBoolean:
			allNumeric = false
		default:
			allNumeric = false
			allBoolean = false
		}
	}
	switch {
	case !sawNonNull:
		return KindString
	case allNumeric && sawFloat:
		return KindFloat
	case allNumeric:
		return KindInteger
	case allBoolean:
		return KindBoolean
	default:
		return KindString
	}
}

// Len returns the number of cells in the column.
func (c Column) Len() int { return len(c.Values) }
