package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alscodec/als/internal/table"
)

// JSONLoader reads a JSON array of flat objects into a Table. Column order
// is the sorted union of every object's keys, since JSON objects carry no
// ordering guarantee across records.
type JSONLoader struct{}

func (JSONLoader) Extensions() []string { return []string{".json"} }

func (JSONLoader) Load(ctx context.Context, path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode JSON array: %w", err)
	}

	rows := make([]map[string]string, len(records))
	for i, rec := range records {
		row := make(map[string]string, len(rec))
		for k, raw := range rec {
			row[k] = jsonScalarText(raw)
		}
		rows[i] = row
	}

	return TableFromRows(rows, columnOrderFromRows(rows))
}

// jsonScalarText renders a JSON scalar back to the plain text parseCellValue
// expects; a JSON null becomes the empty string, matching every other
// loader's inability to distinguish null from blank.
func jsonScalarText(raw json.RawMessage) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return string(raw)
	}
}
