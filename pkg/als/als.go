// Package als is the public entry point for embedding the codec in another
// Go program: build a Table, call Compress to get a document, call
// Decompress to get the Table back.
package als

import (
	"github.com/alscodec/als/internal/als"
	"github.com/alscodec/als/internal/compress"
	"github.com/alscodec/als/internal/table"
)

// Version is the codec's release version, overridable via -ldflags the same
// way cmd/alsc's build version is.
var Version = "dev"

// Table, Column and Value are re-exported so callers never need to import
// the internal table package directly.
type (
	Table  = table.Table
	Column = table.Column
	Value  = table.Value
)

// NewColumn and the Value constructors are re-exported with the types.
var (
	NewColumn    = table.NewColumn
	NullValue    = table.NullValue
	IntegerValue = table.IntegerValue
	FloatValue   = table.FloatValue
	BooleanValue = table.BooleanValue
	StringValue  = table.StringValue
)

// NewTable builds a Table from columns, enforcing unique names and equal
// row counts.
func NewTable(columns []Column) (*Table, error) { return table.New(columns) }

// Config configures the compression driver: pattern detection, dictionary
// admission, and the CTX fallback threshold.
type Config = compress.Config

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config { return compress.DefaultConfig() }

// CompressionReport summarizes the per-column outcome of a Compress call.
type CompressionReport = compress.CompressionReport

// Compress encodes tbl into a rendered document, choosing between ALS
// output and the CTX fallback per cfg.CtxFallbackThreshold.
func Compress(tbl *Table, cfg Config) (string, *CompressionReport, error) {
	c := compress.NewCompressor(cfg)
	doc, report, err := c.Compress(tbl)
	if err != nil {
		return "", nil, err
	}
	return doc.Render(), report, nil
}

// Decompress parses a rendered document and reconstructs its Table.
func Decompress(document string, maxRangeExpansion int64) (*Table, error) {
	doc, err := als.Parse(document)
	if err != nil {
		return nil, err
	}
	return doc.ToTable(maxRangeExpansion)
}
