package ingest

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/alscodec/als/internal/table"
)

// SQLiteLoader reads the first user table of a .sqlite/.db/.sqlite3 file
// into a Table, enumerating sqlite_master to find it. A Table has one
// fixed schema, so this loader only reads the first table it finds;
// callers needing a specific table pass "path#tablename".
type SQLiteLoader struct{}

func (SQLiteLoader) Extensions() []string { return []string{".sqlite", ".db", ".sqlite3"} }

func (SQLiteLoader) Load(ctx context.Context, path string) (*table.Table, error) {
	dbPath, wantTable := splitTableSuffix(path)

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tableName := wantTable
	if tableName == "" {
		row := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' LIMIT 1`)
		if err := row.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("no user table found in %s: %w", dbPath, err)
		}
	}

	rowsResult, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", tableName))
	if err != nil {
		return nil, err
	}
	defer rowsResult.Close()

	columnOrder, err := rowsResult.Columns()
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	for rowsResult.Next() {
		vals := make([]interface{}, len(columnOrder))
		ptrs := make([]interface{}, len(columnOrder))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rowsResult.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]string, len(columnOrder))
		for i, c := range columnOrder {
			if vals[i] == nil {
				row[c] = ""
				continue
			}
			row[c] = fmt.Sprintf("%v", vals[i])
		}
		rows = append(rows, row)
	}

	return TableFromRows(rows, columnOrder)
}

func splitTableSuffix(path string) (dbPath, table string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '#' {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}
