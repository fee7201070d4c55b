package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdb"
)

// Ensure LoggingLinkService implements docdb.LinkService.
var _ docdb.LinkService = (*LoggingLinkService)(nil)

// LoggingLinkService wraps a LinkService with logging.
type LoggingLinkService struct {
	next   docdb.LinkService
	logger *slog.Logger
}

// NewLoggingLinkService creates a new LoggingLinkService.
func NewLoggingLinkService(next docdb.LinkService, logger *slog.Logger) *LoggingLinkService {
	return &LoggingLinkService{next: next, logger: logger}
}

// AddLink delegates to the wrapped service and logs the operation.
func (s *LoggingLinkService) AddLink(ctx context.Context, link *docdb.Link) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("add_link",
			"from", link.FromURL,
			"to", link.ToURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.AddLink(ctx, link)
}

// FindLinks delegates to the wrapped service and logs the operation.
func (s *LoggingLinkService) FindLinks(ctx context.Context, filter docdb.LinkFilter) (links []*docdb.Link, err error) {
	defer func(begin time.Time) {
		var from, to string
		if filter.FromURL != nil {
			from = *filter.FromURL
		}
		if filter.ToURL != nil {
			to = *filter.ToURL
		}
		s.logger.Debug("find_links",
			"from", from,
			"to", to,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLinks(ctx, filter)
}
