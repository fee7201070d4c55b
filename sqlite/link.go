package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var _ docdb.LinkService = (*LinkService)(nil)

// LinkService implements docdb.LinkService using SQLite.
type LinkService struct {
	db     *DB
	config docdb.Config
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB, config docdb.Config) *LinkService {
	return &LinkService{db: db, config: config}
}

// AddLink records the link unless the same from/to pair already exists.
func (s *LinkService) AddLink(ctx context.Context, link *docdb.Link) error {
	if err := link.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO links (from_url, to_url, anchor_text)
		VALUES (?, ?, ?)
		ON CONFLICT(from_url, to_url) DO NOTHING
	`, link.FromURL, link.ToURL, link.AnchorText)
	return err
}

// FindLinks retrieves links matching the filter in insertion order.
func (s *LinkService) FindLinks(ctx context.Context, filter docdb.LinkFilter) ([]*docdb.Link, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT from_url, to_url, anchor_text FROM links WHERE 1=1")

	if filter.FromURL != nil {
		query.WriteString(" AND from_url = ?")
		args = append(args, *filter.FromURL)
	}
	if filter.ToURL != nil {
		query.WriteString(" AND to_url = ?")
		args = append(args, *filter.ToURL)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, s.config.SectionLimitFor(filter.Limit), filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]*docdb.Link, 0)
	for rows.Next() {
		var l docdb.Link
		if err := rows.Scan(&l.FromURL, &l.ToURL, &l.AnchorText); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}

	return links, rows.Err()
}
