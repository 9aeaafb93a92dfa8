package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVLoaderInfersColumnTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	content := "id,name,active\n1,alice,true\n2,bob,false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	tbl, err := CSVLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.RowCount)
	}
	idCol, ok := tbl.Column("id")
	if !ok {
		t.Fatal("missing id column")
	}
	n, ok := idCol.Values[0].Int()
	if !ok || n != 1 {
		t.Fatalf("expected integer id 1, got %+v", idCol.Values[0])
	}
	activeCol, _ := tbl.Column("active")
	b, ok := activeCol.Values[0].Bool()
	if !ok || !b {
		t.Fatalf("expected boolean true, got %+v", activeCol.Values[0])
	}
}

func TestJSONLoaderBuildsTableFromObjectArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	content := `[{"id": 1, "label": "a"}, {"id": 2, "label": "b"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write json: %v", err)
	}

	tbl, err := JSONLoader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.RowCount != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.RowCount)
	}
	labelCol, ok := tbl.Column("label")
	if !ok {
		t.Fatal("missing label column")
	}
	s, _ := labelCol.Values[0].Str()
	if s != "a" {
		t.Fatalf("got %q", s)
	}
}

func TestRegistryDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x\n1\n"), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	r := DefaultRegistry()
	tbl, err := r.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.RowCount != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.RowCount)
	}
}

func TestExpandGlobsRespectsIncludeExclude(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel string) {
		p := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	mustWrite("a.csv")
	mustWrite("b.json")
	mustWrite("vendor/skip.csv")

	matches, err := ExpandGlobs(dir, []string{"**/*.csv", "**/*.json"}, []string{"vendor/**"})
	if err != nil {
		t.Fatalf("ExpandGlobs: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(matches), matches)
	}
}
