// Package ingest adapts external tabular file formats (CSV, JSON, Excel,
// Parquet, SQLite) into table.Table values for the compressor CLI and HTTP
// server.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alscodec/als/internal/table"
)

// Loader reads one file format into a Table.
type Loader interface {
	Extensions() []string
	Load(ctx context.Context, path string) (*table.Table, error)
}

// Registry dispatches a path to the Loader registered for its extension.
type Registry struct {
	byExt map[string]Loader
}

// NewRegistry builds a Registry from loaders, indexing each by every
// extension it declares.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{byExt: make(map[string]Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			r.byExt[ext] = l
		}
	}
	return r
}

// Load dispatches path to the loader registered for its extension.
func (r *Registry) Load(ctx context.Context, path string) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("no loader registered for extension %q", ext)
	}
	return l.Load(ctx, path)
}

// DefaultRegistry wires every adapter this package implements.
func DefaultRegistry() *Registry {
	return NewRegistry(
		CSVLoader{},
		JSONLoader{},
		ExcelLoader{},
		ParquetLoader{},
		SQLiteLoader{},
	)
}
