package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/alscodec/als/internal/table"
)

// CSVLoader reads a .csv/.tsv file into a Table using its header row as
// column names, streaming records with encoding/csv.
type CSVLoader struct{}

func (CSVLoader) Extensions() []string { return []string{".csv", ".tsv"} }

func (CSVLoader) Load(ctx context.Context, path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	headers, err := r.Read()
	if err != nil {
		return nil, err
	}
	columnOrder := append([]string(nil), headers...)

	var rows []map[string]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return TableFromRows(rows, columnOrder)
}
