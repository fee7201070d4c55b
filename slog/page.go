package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdb"
)

// Ensure LoggingPageService implements docdb.PageService.
var _ docdb.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with logging.
// Writes are logged at info level, reads at debug level.
type LoggingPageService struct {
	next   docdb.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next docdb.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// UpsertPage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) UpsertPage(ctx context.Context, page *docdb.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert page",
			"url", page.URL,
			"section", page.Section,
			"words", page.WordCount,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertPage(ctx, page)
}

// FindPageByURL delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) FindPageByURL(ctx context.Context, url string) (page *docdb.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find page",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPageByURL(ctx, url)
}

// FindPages delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) FindPages(ctx context.Context, filter docdb.PageFilter) (pages []*docdb.PageSummary, err error) {
	defer func(begin time.Time) {
		section := "*"
		if filter.Section != nil {
			section = *filter.Section
		}
		s.logger.Debug("find pages",
			"section", section,
			"offset", filter.Offset,
			"limit", filter.Limit,
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPages(ctx, filter)
}

// ListSections delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) ListSections(ctx context.Context) (sections []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list sections",
			"count", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListSections(ctx)
}

// DeletePage delegates to the wrapped service and logs the operation.
func (s *LoggingPageService) DeletePage(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete page",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePage(ctx, url)
}
