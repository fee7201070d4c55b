// Package sqlite provides SQLite-based storage implementations for docdb
// services. Pages and links live in ordinary tables; the full-text index is
// an FTS5 external-content table maintained explicitly inside the same
// transaction as every page write.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/docdb"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, creates missing structures and
// verifies that pre-existing tables carry the required columns.
// Returns ESCHEMA if an existing table is incompatible.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(context.Background()); err != nil {
		conn.Close()
		db.db = nil
		if docdb.ErrorCode(err) == docdb.ESCHEMA {
			return err
		}
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// requiredColumns lists the columns every table must have for the services
// to work against a pre-existing database.
var requiredColumns = map[string][]string{
	"pages": {
		"id", "url", "title", "content", "markdown", "word_count",
		"section", "subsection", "content_hash", "scraped_at", "metadata",
	},
	"links": {"id", "from_url", "to_url", "anchor_text"},
}

// createSchema creates the tables if they don't exist, verifies them, then
// creates secondary indexes and the full-text index. A freshly created
// full-text index is rebuilt from the pages already stored.
func (db *DB) createSchema(ctx context.Context) error {
	tables := `
		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			markdown TEXT NOT NULL DEFAULT '',
			word_count INTEGER NOT NULL DEFAULT 0,
			section TEXT NOT NULL DEFAULT '',
			subsection TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			scraped_at TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS links (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			from_url TEXT NOT NULL,
			to_url TEXT NOT NULL,
			anchor_text TEXT NOT NULL DEFAULT '',
			UNIQUE(from_url, to_url)
		);
	`
	if _, err := db.db.ExecContext(ctx, tables); err != nil {
		return err
	}

	if err := db.verifySchema(ctx); err != nil {
		return err
	}

	indexes := `
		CREATE INDEX IF NOT EXISTS idx_pages_section ON pages(section, word_count DESC, url);
		CREATE INDEX IF NOT EXISTS idx_links_to_url ON links(to_url);
	`
	if _, err := db.db.ExecContext(ctx, indexes); err != nil {
		return err
	}

	var exists int
	if err := db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'pages_fts'`,
	).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	if _, err := db.db.ExecContext(ctx, `
		CREATE VIRTUAL TABLE pages_fts USING fts5(
			title, markdown, url, section,
			content='pages', content_rowid='id'
		)
	`); err != nil {
		return err
	}
	return rebuildIndex(ctx, db.db)
}

// verifySchema returns ESCHEMA when a required table lacks a column.
func (db *DB) verifySchema(ctx context.Context) error {
	for _, table := range []string{"pages", "links"} {
		columns, err := db.tableColumns(ctx, table)
		if err != nil {
			return err
		}
		for _, name := range requiredColumns[table] {
			if !columns[name] {
				return docdb.Errorf(docdb.ESCHEMA, "table %s is missing column %s", table, name)
			}
		}
	}
	return nil
}

func (db *DB) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
