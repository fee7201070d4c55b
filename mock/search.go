package mock

import (
	"context"

	"github.com/fwojciec/docdb"
)

var (
	_ docdb.SearchService  = (*SearchService)(nil)
	_ docdb.ContextBuilder = (*ContextBuilder)(nil)
	_ docdb.Exporter       = (*Exporter)(nil)
)

// SearchService is a mock implementation of docdb.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts docdb.SearchOptions) ([]*docdb.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts docdb.SearchOptions) ([]*docdb.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}

// ContextBuilder is a mock implementation of docdb.ContextBuilder.
type ContextBuilder struct {
	BuildContextFn func(ctx context.Context, question string, maxWords int) (string, error)
}

func (b *ContextBuilder) BuildContext(ctx context.Context, question string, maxWords int) (string, error) {
	return b.BuildContextFn(ctx, question, maxWords)
}

// Exporter is a mock implementation of docdb.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, dir string) (*docdb.ExportSummary, error)
}

func (e *Exporter) Export(ctx context.Context, dir string) (*docdb.ExportSummary, error) {
	return e.ExportFn(ctx, dir)
}
