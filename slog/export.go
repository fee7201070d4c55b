package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdb"
)

// Ensure LoggingExporter implements docdb.Exporter.
var _ docdb.Exporter = (*LoggingExporter)(nil)

// LoggingExporter wraps an Exporter with logging.
type LoggingExporter struct {
	next   docdb.Exporter
	logger *slog.Logger
}

// NewLoggingExporter creates a new LoggingExporter.
func NewLoggingExporter(next docdb.Exporter, logger *slog.Logger) *LoggingExporter {
	return &LoggingExporter{next: next, logger: logger}
}

// Export delegates to the wrapped exporter and logs the operation.
func (e *LoggingExporter) Export(ctx context.Context, dir string) (summary *docdb.ExportSummary, err error) {
	defer func(begin time.Time) {
		pages := 0
		if summary != nil {
			pages = summary.Pages
		}
		e.logger.Info("export",
			"dir", dir,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Export(ctx, dir)
}
