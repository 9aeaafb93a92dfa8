package als

import (
	"strconv"
	"strings"

	"github.com/alscodec/als/internal/table"
)

// NewCTXDocument builds the raw fallback for tbl: every cell becomes its
// own Raw (or Null/Empty) leaf and no pattern detection is attempted. CTX
// shares ALS's wire grammar — Render/Parse never branch on Format — so this
// is the only place the "no operators" property is established.
func NewCTXDocument(tbl *table.Table) *Document {
	doc := &Document{Version: CurrentVersion, Format: FormatCTX}
	for _, col := range tbl.Columns {
		doc.Columns = append(doc.Columns, ColumnSchema{Name: col.Name, Kind: col.Kind})
		ops := make([]Operator, len(col.Values))
		for i, v := range col.Values {
			ops[i] = LeafForEncodedCell(EncodeValue(v))
		}
		doc.Streams = append(doc.Streams, ColumnStream{Operators: ops})
	}
	return doc
}

// Render produces the canonical serialized form of the document (§4.5,
// §6): the version/schema header line, then the body — an optional
// dictionary block followed by each column's stream, all '|'-joined on a
// single line.
func (d *Document) Render() string {
	var b strings.Builder

	b.WriteString(strconv.Itoa(int(d.Version)))
	for _, col := range d.Columns {
		b.WriteByte(' ')
		b.WriteByte('#')
		b.WriteString(col.Name)
	}
	b.WriteByte('\n')

	var segments []string
	if len(d.Dict) > 0 {
		pairs := make([]string, len(d.Dict))
		for i, v := range d.Dict {
			pairs[i] = "_" + strconv.FormatInt(int64(i), 36) + "=" + v
		}
		segments = append(segments, "^"+strings.Join(pairs, " "))
	}
	for _, stream := range d.Streams {
		parts := make([]string, len(stream.Operators))
		for i, op := range stream.Operators {
			parts[i] = op.Render()
		}
		segments = append(segments, strings.Join(parts, " "))
	}
	b.WriteString(strings.Join(segments, "|"))

	return b.String()
}

// PrettyPrint renders a human-readable, non-canonical view of the document:
// one indented line per column showing its name, inferred kind, and
// operators spelled out instead of packed onto a single line. It is never
// parsed back; it exists for inspection and the stats/report tooling (§9:
// the pretty-printer's grammar is informational only).
func (d *Document) PrettyPrint() string {
	var b strings.Builder
	b.WriteString("document (version ")
	b.WriteString(strconv.Itoa(int(d.Version)))
	b.WriteString(", format ")
	b.WriteByte(byte(d.Format))
	b.WriteString(")\n")

	for i, col := range d.Columns {
		b.WriteString("  ")
		b.WriteString(col.Name)
		b.WriteString(" (")
		b.WriteString(kindLabel(col.Kind))
		b.WriteString("):\n")
		for _, op := range d.Streams[i].Operators {
			b.WriteString("    ")
			b.WriteString(op.Render())
			b.WriteByte('\n')
		}
	}
	if len(d.Dict) > 0 {
		b.WriteString("  dictionary:\n")
		for i, entry := range d.Dict {
			b.WriteString("    _")
			b.WriteString(strconv.FormatInt(int64(i), 36))
			b.WriteString(" = ")
			b.WriteString(entry)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func kindLabel(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "integer"
	case table.KindFloat:
		return "float"
	case table.KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}
