package ingest

import (
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/alscodec/als/internal/table"
)

// ParquetLoader streams a .parquet file's rows into generic maps via
// parquet-go's schema-less reader (local.NewLocalFileReader +
// reader.NewParquetReader, read in batches), then hands the result to
// TableFromRows.
type ParquetLoader struct{}

func (ParquetLoader) Extensions() []string { return []string{".parquet"} }

func (ParquetLoader) Load(ctx context.Context, path string) (*table.Table, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, map[string]interface{}{}, 1)
	if err != nil {
		return nil, fmt.Errorf("open parquet reader: %w", err)
	}
	defer pr.ReadStop()

	total := int(pr.GetNumRows())
	var rows []map[string]string
	const batchSize = 1000
	for read := 0; read < total; {
		n := batchSize
		if total-read < n {
			n = total - read
		}
		data := make([]interface{}, n)
		if err := pr.Read(&data); err != nil {
			return nil, fmt.Errorf("read parquet batch: %w", err)
		}
		for _, rec := range data {
			m, ok := rec.(map[string]interface{})
			if !ok {
				continue
			}
			rows = append(rows, stringifyRow(m))
		}
		read += n
	}

	return TableFromRows(rows, columnOrderFromRows(rows))
}

func stringifyRow(m map[string]interface{}) map[string]string {
	row := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			row[k] = ""
			continue
		}
		row[k] = fmt.Sprintf("%v", v)
	}
	return row
}
