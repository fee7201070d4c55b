package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdb"
)

// Ensure LoggingStatsService implements docdb.StatsService.
var _ docdb.StatsService = (*LoggingStatsService)(nil)

// LoggingStatsService wraps a StatsService with debug logging.
type LoggingStatsService struct {
	next   docdb.StatsService
	logger *slog.Logger
}

// NewLoggingStatsService creates a new LoggingStatsService.
func NewLoggingStatsService(next docdb.StatsService, logger *slog.Logger) *LoggingStatsService {
	return &LoggingStatsService{next: next, logger: logger}
}

// Stats delegates to the wrapped service and logs the operation.
func (s *LoggingStatsService) Stats(ctx context.Context) (stats *docdb.Stats, err error) {
	defer func(begin time.Time) {
		pages := 0
		if stats != nil {
			pages = stats.TotalPages
		}
		s.logger.Debug("stats",
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Stats(ctx)
}

// SectionStats delegates to the wrapped service and logs the operation.
func (s *LoggingStatsService) SectionStats(ctx context.Context) (sections []*docdb.SectionStat, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("section stats",
			"count", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SectionStats(ctx)
}
