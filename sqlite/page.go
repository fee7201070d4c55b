package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var _ docdb.PageService = (*PageService)(nil)

// PageService implements docdb.PageService using SQLite.
type PageService struct {
	db     *DB
	config docdb.Config
	titles docdb.TitleChain
}

// NewPageService creates a new PageService. Titles are resolved with the
// given chain; a nil chain uses the first level-1 markdown heading only.
func NewPageService(db *DB, config docdb.Config, titles docdb.TitleChain) *PageService {
	if titles == nil {
		titles = docdb.TitleChain{docdb.MarkdownTitle{}}
	}
	return &PageService{db: db, config: config, titles: titles}
}

// UpsertPage writes the page and its index entry in one transaction,
// replacing any page stored under the same URL.
func (s *PageService) UpsertPage(ctx context.Context, page *docdb.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := page.Derive(s.titles); err != nil {
		return err
	}
	page.ScrapedAt = time.Now().UTC()

	metadata, err := json.Marshal(page.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	old, err := findIndexEntry(ctx, tx, page.URL)
	if err != nil {
		return err
	}

	if old == nil {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO pages (url, title, content, markdown, word_count, section, subsection, content_hash, scraped_at, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, page.URL, page.Title, page.Content, page.Markdown, page.WordCount, page.Section,
			page.Subsection, page.ContentHash, page.ScrapedAt.Format(time.RFC3339), string(metadata))
		if err != nil {
			return fmt.Errorf("failed to insert page: %w", err)
		}
		if page.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		if err := insertIndexEntry(ctx, tx, pageIndexEntry(page)); err != nil {
			return err
		}
	} else {
		page.ID = old.rowID
		_, err := tx.ExecContext(ctx, `
			UPDATE pages
			SET title = ?, content = ?, markdown = ?, word_count = ?, section = ?, subsection = ?,
			    content_hash = ?, scraped_at = ?, metadata = ?
			WHERE id = ?
		`, page.Title, page.Content, page.Markdown, page.WordCount, page.Section, page.Subsection,
			page.ContentHash, page.ScrapedAt.Format(time.RFC3339), string(metadata), page.ID)
		if err != nil {
			return fmt.Errorf("failed to update page: %w", err)
		}
		if err := replaceIndexEntry(ctx, tx, old, pageIndexEntry(page)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pageIndexEntry(page *docdb.Page) *indexEntry {
	return &indexEntry{
		rowID:    page.ID,
		title:    page.Title,
		markdown: page.Markdown,
		url:      page.URL,
		section:  page.Section,
	}
}

// FindPageByURL retrieves a page by URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docdb.Page, error) {
	var page docdb.Page
	var scrapedAt, metadata string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, content, markdown, word_count, section, subsection, content_hash, scraped_at, metadata
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.URL, &page.Title, &page.Content, &page.Markdown, &page.WordCount,
		&page.Section, &page.Subsection, &page.ContentHash, &scrapedAt, &metadata)

	if err == sql.ErrNoRows {
		return nil, docdb.Errorf(docdb.ENOTFOUND, "page not found: %s", url)
	}
	if err != nil {
		return nil, err
	}

	if page.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	if metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &page.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	return &page, nil
}

// FindPages retrieves page summaries matching the filter, largest first.
// The limit is clamped to the configured section browsing maximum.
func (s *PageService) FindPages(ctx context.Context, filter docdb.PageFilter) ([]*docdb.PageSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, section, subsection, word_count FROM pages")

	if filter.Section != nil {
		query.WriteString(" WHERE section = ?")
		args = append(args, *filter.Section)
	}

	query.WriteString(" ORDER BY word_count DESC, url ASC")
	appendPagination(&query, &args, s.config.SectionLimitFor(filter.Limit), filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// scanSummaries reads url, title, section, subsection and word_count rows.
func scanSummaries(rows *sql.Rows) ([]*docdb.PageSummary, error) {
	pages := make([]*docdb.PageSummary, 0)
	for rows.Next() {
		var p docdb.Page
		if err := rows.Scan(&p.URL, &p.Title, &p.Section, &p.Subsection, &p.WordCount); err != nil {
			return nil, err
		}
		pages = append(pages, p.Summary())
	}
	return pages, rows.Err()
}

// ListSections returns the distinct non-empty sections in ascending order.
func (s *PageService) ListSections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT section
		FROM pages
		WHERE section != ''
		ORDER BY section ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]string, 0)
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// DeletePage removes a page and its index entry in one transaction.
func (s *PageService) DeletePage(ctx context.Context, url string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	old, err := findIndexEntry(ctx, tx, url)
	if err != nil {
		return err
	}
	if old == nil {
		return docdb.Errorf(docdb.ENOTFOUND, "page not found: %s", url)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, old.rowID); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	if err := deleteIndexEntry(ctx, tx, old); err != nil {
		return err
	}

	return tx.Commit()
}
