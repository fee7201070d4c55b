package sqlite

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"strings"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var _ docdb.StatsService = (*StatsService)(nil)

const (
	topSectionsLimit = 5
	topPagesLimit    = 10
)

// StatsService implements docdb.StatsService using SQLite. Every call reads
// the current tables inside one read transaction.
type StatsService struct {
	db *DB
}

// NewStatsService creates a new StatsService.
func NewStatsService(db *DB) *StatsService {
	return &StatsService{db: db}
}

// Stats returns global statistics.
func (s *StatsService) Stats(ctx context.Context) (*docdb.Stats, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var stats docdb.Stats
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(word_count), 0), COALESCE(AVG(word_count), 0),
		       COUNT(DISTINCT NULLIF(section, ''))
		FROM pages
	`).Scan(&stats.TotalPages, &stats.TotalWords, &stats.AvgWordsPerPage, &stats.SectionCount); err != nil {
		return nil, err
	}
	stats.AvgWordsPerPage = round1(stats.AvgWordsPerPage)

	if stats.TopSections, err = topSections(ctx, tx); err != nil {
		return nil, err
	}
	if stats.TopPages, err = topPages(ctx, tx); err != nil {
		return nil, err
	}

	return &stats, tx.Commit()
}

func topSections(ctx context.Context, tx *sql.Tx) ([]*docdb.SectionCount, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT section, COUNT(*) AS pages
		FROM pages
		WHERE section != ''
		GROUP BY section
		ORDER BY pages DESC, section ASC
		LIMIT ?
	`, topSectionsLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]*docdb.SectionCount, 0)
	for rows.Next() {
		var sc docdb.SectionCount
		if err := rows.Scan(&sc.Section, &sc.Pages); err != nil {
			return nil, err
		}
		sections = append(sections, &sc)
	}
	return sections, rows.Err()
}

func topPages(ctx context.Context, tx *sql.Tx) ([]*docdb.PageSummary, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT url, title, section, subsection, word_count
		FROM pages
		ORDER BY word_count DESC, url ASC
		LIMIT ?
	`, topPagesLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// SectionStats returns per-section statistics ordered by page count
// descending then section name.
func (s *StatsService) SectionStats(ctx context.Context) ([]*docdb.SectionStat, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT section, COUNT(*) AS pages, COALESCE(SUM(word_count), 0), COALESCE(AVG(word_count), 0),
		       COALESCE((SELECT group_concat(sub, char(31)) FROM (
		           SELECT DISTINCT subsection AS sub FROM pages s
		           WHERE s.section = p.section AND s.subsection != ''
		           ORDER BY sub
		       )), '')
		FROM pages p
		WHERE section != ''
		GROUP BY section
		ORDER BY pages DESC, section ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*docdb.SectionStat, 0)
	for rows.Next() {
		var st docdb.SectionStat
		var subsections string
		if err := rows.Scan(&st.Section, &st.PageCount, &st.TotalWords, &st.AvgWords, &subsections); err != nil {
			return nil, err
		}
		st.AvgWords = round1(st.AvgWords)
		st.Subsections = []string{}
		if subsections != "" {
			st.Subsections = strings.Split(subsections, "\x1f")
			sort.Strings(st.Subsections)
		}
		stats = append(stats, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, tx.Commit()
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
