package compress

import "github.com/alscodec/als/internal/pattern"

// ColumnStats reports how one column's stream was compressed: which pattern
// won it, how many cells the dictionary factored out, and the byte counts
// of the column's cells laid out flat and of its rendered operator.
type ColumnStats struct {
	Name          string
	Pattern       pattern.PatternType
	RawBytes      int
	EncodedBytes  int
	DictHits      int
	Ratio         float64
}

// CompressionReport summarizes a whole Compress call: per-column stats, the
// columns' raw bytes summed, the byte length of the emitted document, and
// whether the CTX fallback was used. The fallback decision itself compares
// the rendered ALS and CTX documents, not these totals.
type CompressionReport struct {
	Columns      []ColumnStats
	RawBytes     int
	EncodedBytes int
	UsedCTX      bool
	Ratio        float64
}

func buildReport(columns []ColumnStats, alsLen, ctxLen int, usedCTX bool) *CompressionReport {
	raw := 0
	for _, c := range columns {
		raw += c.RawBytes
	}
	encoded := alsLen
	if usedCTX {
		encoded = ctxLen
	}
	r := 0.0
	if encoded > 0 {
		r = float64(raw) / float64(encoded)
	}
	return &CompressionReport{
		Columns:      columns,
		RawBytes:     raw,
		EncodedBytes: encoded,
		UsedCTX:      usedCTX,
		Ratio:        r,
	}
}
