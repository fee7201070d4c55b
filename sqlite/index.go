package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// indexEntry is the shadow of a page row in the full-text index. The FTS5
// external-content table needs the exact previously indexed values to
// remove an entry, so entries are always read from the page row inside the
// same transaction that changes it.
type indexEntry struct {
	rowID    int64
	title    string
	markdown string
	url      string
	section  string
}

// findIndexEntry returns the index entry of the page stored under url, or
// nil if there is no such page.
func findIndexEntry(ctx context.Context, tx *sql.Tx, url string) (*indexEntry, error) {
	var e indexEntry
	err := tx.QueryRowContext(ctx, `
		SELECT id, title, markdown, url, section
		FROM pages
		WHERE url = ?
	`, url).Scan(&e.rowID, &e.title, &e.markdown, &e.url, &e.section)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func insertIndexEntry(ctx context.Context, ex execer, e *indexEntry) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO pages_fts (rowid, title, markdown, url, section)
		VALUES (?, ?, ?, ?, ?)
	`, e.rowID, e.title, e.markdown, e.url, e.section)
	if err != nil {
		return fmt.Errorf("failed to add index entry: %w", err)
	}
	return nil
}

func deleteIndexEntry(ctx context.Context, ex execer, e *indexEntry) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO pages_fts (pages_fts, rowid, title, markdown, url, section)
		VALUES ('delete', ?, ?, ?, ?, ?)
	`, e.rowID, e.title, e.markdown, e.url, e.section)
	if err != nil {
		return fmt.Errorf("failed to remove index entry: %w", err)
	}
	return nil
}

// replaceIndexEntry swaps old for next. Callers run it inside the page
// write transaction so both changes commit or roll back together.
func replaceIndexEntry(ctx context.Context, ex execer, old, next *indexEntry) error {
	if err := deleteIndexEntry(ctx, ex, old); err != nil {
		return err
	}
	return insertIndexEntry(ctx, ex, next)
}

// rebuildIndex regenerates the whole index from the pages table.
func rebuildIndex(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx, `INSERT INTO pages_fts (pages_fts) VALUES ('rebuild')`); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}
	return nil
}
