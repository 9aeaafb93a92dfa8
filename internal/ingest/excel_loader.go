package ingest

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/alscodec/als/internal/table"
)

// ExcelLoader reads the first sheet of a .xlsx/.xlsm workbook into a Table,
// treating the first row as headers, via excelize.OpenFile/GetRows.
// Narrowed to one sheet since a Table has a single fixed column set.
type ExcelLoader struct{}

func (ExcelLoader) Extensions() []string { return []string{".xlsx", ".xlsm"} }

func (ExcelLoader) Load(ctx context.Context, path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.New(nil)
	}
	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rawRows) == 0 {
		return table.New(nil)
	}

	headers := rawRows[0]
	columnOrder := make([]string, len(headers))
	for i, h := range headers {
		if h == "" {
			h, _ = excelize.ColumnNumberToName(i + 1)
		}
		columnOrder[i] = h
	}

	rows := make([]map[string]string, 0, len(rawRows)-1)
	for _, r := range rawRows[1:] {
		row := make(map[string]string, len(columnOrder))
		for i, name := range columnOrder {
			if i < len(r) {
				row[name] = r[i]
			}
		}
		rows = append(rows, row)
	}

	return TableFromRows(rows, columnOrder)
}
