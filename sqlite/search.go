package sqlite

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var _ docdb.SearchService = (*SearchService)(nil)

// maxSnippetTokens is the largest window FTS5 snippet() accepts.
const maxSnippetTokens = 64

var queryWordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SearchService implements docdb.SearchService using the FTS5 index, with a
// substring fallback over the pages table.
type SearchService struct {
	db     *DB
	config docdb.Config
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB, config docdb.Config) *SearchService {
	return &SearchService{db: db, config: config}
}

// Search runs a ranked query against the index. When the index fails or
// matches nothing and fallback is enabled, it runs a substring query instead.
// With fallback disabled an index failure is reported as EUNAVAILABLE.
func (s *SearchService) Search(ctx context.Context, query string, opts docdb.SearchOptions) ([]*docdb.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, docdb.Errorf(docdb.EINVALID, "search query required")
	}
	limit := s.config.SearchLimitFor(opts.Limit)

	results, rankedErr := s.ranked(ctx, query, opts.Section, limit)
	if rankedErr != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if rankedErr == nil && len(results) > 0 {
		return results, nil
	}

	if !s.config.EnableFallback {
		if rankedErr != nil {
			return nil, docdb.Errorf(docdb.EUNAVAILABLE, "search index unavailable: %v", rankedErr)
		}
		return results, nil
	}

	return s.substring(ctx, query, opts.Section, limit)
}

// matchExpression turns free text into an FTS5 query that requires every
// word, each quoted so punctuation is never parsed as query syntax.
func matchExpression(query string) string {
	words := queryWordRe.FindAllString(query, -1)
	for i, w := range words {
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}

func (s *SearchService) ranked(ctx context.Context, query, section string, limit int) ([]*docdb.SearchResult, error) {
	match := matchExpression(query)
	if match == "" {
		return []*docdb.SearchResult{}, nil
	}

	tokens := s.config.SnippetWords
	if tokens < 1 {
		tokens = 1
	}
	if tokens > maxSnippetTokens {
		tokens = maxSnippetTokens
	}

	var q strings.Builder
	args := []any{s.config.HighlightStart, s.config.HighlightEnd, s.config.Ellipsis, tokens, match}

	q.WriteString(`
		SELECT p.url, p.title, p.section, p.subsection, p.word_count,
		       snippet(pages_fts, 1, ?, ?, ?, ?)
		FROM pages_fts
		JOIN pages p ON p.id = pages_fts.rowid
		WHERE pages_fts MATCH ?`)
	if section != "" {
		q.WriteString(" AND p.section = ?")
		args = append(args, section)
	}
	q.WriteString(" ORDER BY pages_fts.rank, p.url LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	return s.scanResults(rows, docdb.SearchModeRanked)
}

func (s *SearchService) substring(ctx context.Context, query, section string, limit int) ([]*docdb.SearchResult, error) {
	pattern := "%" + escapeLike(query) + "%"

	var q strings.Builder
	args := []any{s.config.SnippetChars, pattern, pattern}

	q.WriteString(`
		SELECT url, title, section, subsection, word_count, substr(markdown, 1, ?)
		FROM pages
		WHERE (title LIKE ? ESCAPE '\' OR markdown LIKE ? ESCAPE '\')`)
	if section != "" {
		q.WriteString(" AND section = ?")
		args = append(args, section)
	}
	q.WriteString(" ORDER BY word_count DESC, url ASC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	return s.scanResults(rows, docdb.SearchModeSubstring)
}

func (s *SearchService) scanResults(rows *sql.Rows, mode docdb.SearchMode) ([]*docdb.SearchResult, error) {
	defer rows.Close()

	results := make([]*docdb.SearchResult, 0)
	for rows.Next() {
		r := docdb.SearchResult{Mode: mode}
		var snippet sql.NullString
		if err := rows.Scan(&r.URL, &r.Title, &r.Section, &r.Subsection, &r.WordCount, &snippet); err != nil {
			return nil, err
		}
		r.Snippet = snippet.String
		if s.config.BaseURL != "" {
			r.FullURL = s.config.FullURL(r.URL)
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}
