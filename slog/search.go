package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdb"
)

// Ensure LoggingSearchService implements docdb.SearchService.
var _ docdb.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   docdb.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next docdb.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query, the number of
// results and the mode that produced them.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts docdb.SearchOptions) (results []*docdb.SearchResult, err error) {
	defer func(begin time.Time) {
		var mode docdb.SearchMode
		if len(results) > 0 {
			mode = results[0].Mode
		}
		s.logger.Info("search",
			"query", query,
			"section", opts.Section,
			"limit", opts.Limit,
			"count", len(results),
			"mode", mode,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}

// Ensure LoggingContextBuilder implements docdb.ContextBuilder.
var _ docdb.ContextBuilder = (*LoggingContextBuilder)(nil)

// LoggingContextBuilder wraps a ContextBuilder with logging.
type LoggingContextBuilder struct {
	next   docdb.ContextBuilder
	logger *slog.Logger
}

// NewLoggingContextBuilder creates a new LoggingContextBuilder.
func NewLoggingContextBuilder(next docdb.ContextBuilder, logger *slog.Logger) *LoggingContextBuilder {
	return &LoggingContextBuilder{next: next, logger: logger}
}

// BuildContext delegates to the wrapped builder and logs the size of the
// assembled context.
func (b *LoggingContextBuilder) BuildContext(ctx context.Context, question string, maxWords int) (text string, err error) {
	defer func(begin time.Time) {
		b.logger.Info("build context",
			"question", question,
			"max_words", maxWords,
			"words", docdb.CountWords(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.BuildContext(ctx, question, maxWords)
}
