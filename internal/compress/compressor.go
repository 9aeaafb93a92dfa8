package compress

import (
	"github.com/alscodec/als/internal/als"
	"github.com/alscodec/als/internal/pattern"
	"github.com/alscodec/als/internal/table"
)

// Config controls the compressor's per-column decisions (spec.md §4.4, §7).
type Config struct {
	MinPatternLength     int
	MaxRangeExpansion    int64
	DictMinOccurrences   int
	DictMaxEntries       int
	CtxFallbackThreshold float64
}

// DefaultConfig returns the compressor defaults named in spec.md §7.
func DefaultConfig() Config {
	return Config{
		MinPatternLength:     3,
		MaxRangeExpansion:    1_000_000,
		DictMinOccurrences:   2,
		DictMaxEntries:       4096,
		CtxFallbackThreshold: 1.0,
	}
}

// Compressor drives the table-to-document direction of the pipeline: for
// every column it builds a dictionary, hands the (possibly dictionary
// rewritten) stream to the pattern engine, assembles the ALS document that
// wins, then compares it against the CTX fallback and keeps whichever is
// smaller per CtxFallbackThreshold.
type Compressor struct {
	cfg    Config
	engine *pattern.Engine
	dict   DictionaryBuilder
}

// NewCompressor builds a Compressor from cfg.
func NewCompressor(cfg Config) *Compressor {
	return &Compressor{
		cfg:    cfg,
		engine: pattern.NewEngine(cfg.MinPatternLength),
		dict:   DictionaryBuilder{MinOccurrences: cfg.DictMinOccurrences, MaxEntries: cfg.DictMaxEntries},
	}
}

// Compress builds the ALS (or CTX-fallback) document for tbl and reports how
// each column was encoded.
func (c *Compressor) Compress(tbl *table.Table) (*als.Document, *CompressionReport, error) {
	ctxDoc := als.NewCTXDocument(tbl)
	ctxLen := len(ctxDoc.Render())

	alsDoc := &als.Document{Version: als.CurrentVersion, Format: als.FormatALS}
	columns := make([]ColumnStats, len(tbl.Columns))
	var dict []string

	for i, col := range tbl.Columns {
		alsDoc.Columns = append(alsDoc.Columns, als.ColumnSchema{Name: col.Name, Kind: col.Kind})

		encoded := make([]string, len(col.Values))
		for j, v := range col.Values {
			encoded[j] = als.EncodeValue(v)
		}
		rawBytes := rawEncodedLen(encoded)

		dr := c.dict.Build(encoded)
		base := len(dict)
		if len(dr.Entries) > 0 {
			dict = append(dict, dr.Entries...)
			for k := range dr.Rewritten {
				if dr.Rewritten[k] != encoded[k] {
					dr.Rewritten[k] = reindexDictRef(dr.Rewritten[k], base)
				}
			}
		}
		streamValues := encoded
		if len(dr.Entries) > 0 {
			streamValues = dr.Rewritten
		}

		res := c.engine.Select(streamValues)
		res.Operator = rewriteDictRefs(res.Operator)
		alsDoc.Streams = append(alsDoc.Streams, als.ColumnStream{Operators: []als.Operator{res.Operator}})

		columns[i] = ColumnStats{
			Name:         col.Name,
			Pattern:      res.Type,
			RawBytes:     rawBytes,
			EncodedBytes: len(res.Operator.Render()),
			DictHits:     dr.Hits,
			Ratio:        res.CompressionRatio,
		}
	}
	alsDoc.Dict = dict

	alsLen := len(alsDoc.Render())
	threshold := c.cfg.CtxFallbackThreshold
	if threshold == 0 {
		threshold = 1.0
	}
	// spec.md's default threshold of 1.0 means ALS must strictly beat CTX;
	// a tie or a loss falls back to CTX.
	useCTX := float64(alsLen) >= float64(ctxLen)/threshold

	report := buildReport(columns, alsLen, ctxLen, useCTX)
	if useCTX {
		ctxDoc.Format = als.FormatCTX
		return ctxDoc, report, nil
	}
	return alsDoc, report, nil
}

// reindexDictRef rewrites a dictionary-builder placeholder so its index is
// offset into the document-wide dictionary rather than this column's local
// one: each column builds its dictionary candidates independently, but all
// columns share one dictionary block on the wire.
func reindexDictRef(cell string, base int) string {
	idx, ok := dictRefIndex(cell)
	if !ok {
		return cell
	}
	return dictRefText(idx + base)
}

// rawEncodedLen is the byte cost of values laid out flat and space
// separated, the baseline every pattern or dictionary choice is measured
// against.
func rawEncodedLen(values []string) int {
	n := 0
	for i, v := range values {
		n += len(v)
		if i > 0 {
			n++
		}
	}
	return n
}
