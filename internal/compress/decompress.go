package compress

import (
	"github.com/alscodec/als/internal/als"
	"github.com/alscodec/als/internal/table"
)

// Decompress parses an ALS or CTX document and expands it back into a
// Table, the inverse of (*Compressor).Compress. cfg supplies the range
// expansion bound applied while materializing Range operators.
func Decompress(text string, cfg Config) (*table.Table, error) {
	doc, err := als.Parse(text)
	if err != nil {
		return nil, err
	}
	return doc.ToTable(cfg.MaxRangeExpansion)
}
