package docdb

import "context"

// ExportSummary describes the files written by an export.
type ExportSummary struct {
	ID       string   `json:"id"`
	Dir      string   `json:"dir"`
	Pages    int      `json:"pages"`
	Sections []string `json:"sections"`
	Files    []string `json:"files"`
}

// Exporter writes the store content to downstream formats.
type Exporter interface {
	// Export writes every export file under dir, replacing previous
	// exports. Files are only visible once all of them are complete.
	Export(ctx context.Context, dir string) (*ExportSummary, error)
}
