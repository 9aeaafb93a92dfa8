package als

import (
	"github.com/alscodec/als/internal/alsutil"
	"github.com/alscodec/als/internal/table"
)

// FormatIndicator is provenance metadata attached to a compressed Document:
// it records which path the driver took, not how the document is spelled.
// ALS and CTX share one wire grammar — CTX is the degenerate case where
// every column's stream is a flat sequence of Raw (or Null/Empty) leaves
// with no Range/Multiply/Toggle/DictRef nodes, so the two formats never
// need to be distinguished while parsing.
type FormatIndicator byte

const (
	FormatALS FormatIndicator = 'A'
	FormatCTX FormatIndicator = 'C'
)

// CurrentVersion is the highest document version this package writes and
// reads. Parse rejects any document whose version byte exceeds it.
const CurrentVersion byte = 1

// ColumnSchema names a column and records the Value kind the compressor
// inferred for it. The kind is never serialized — cells are self-describing
// on the wire — so it is only meaningful to callers building or inspecting
// a Document in memory (the compressor's stats, the pretty-printer).
type ColumnSchema struct {
	Name string
	Kind table.Kind
}

// ColumnStream is one column's operator-IR encoding.
type ColumnStream struct {
	Operators []Operator
}

// Document is the decoded form of a serialized document: the version, the
// column schema, the per-column operator streams, and the shared
// dictionary referenced by DictRef operators.
type Document struct {
	Version byte
	Format  FormatIndicator
	Columns []ColumnSchema
	Streams []ColumnStream
	Dict    []string // escaped dictionary entries, indexed by DictRef.DictIndex
}

// ToTable reconstructs the original table by expanding every column stream
// back into table.Value cells via DecodeValue.
func (d *Document) ToTable(maxRangeExpansion int64) (*table.Table, error) {
	if len(d.Streams) != len(d.Columns) {
		return nil, &alsutil.ErrColumnMismatch{Schema: len(d.Columns), Data: len(d.Streams)}
	}
	cols := make([]table.Column, len(d.Columns))
	for i, stream := range d.Streams {
		cells, err := SequenceOp(stream.Operators).Expand(d.Dict, maxRangeExpansion)
		if err != nil {
			return nil, err
		}
		values := make([]table.Value, len(cells))
		for j, c := range cells {
			values[j] = DecodeValue(c)
		}
		cols[i] = table.NewColumn(d.Columns[i].Name, values)
	}
	return table.New(cols)
}
