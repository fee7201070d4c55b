package docdb

import "context"

// Stats summarizes the whole store.
type Stats struct {
	TotalPages      int             `json:"total_pages"`
	TotalWords      int             `json:"total_words"`
	AvgWordsPerPage float64         `json:"avg_words_per_page"`
	SectionCount    int             `json:"section_count"`
	TopSections     []*SectionCount `json:"top_sections"`
	TopPages        []*PageSummary  `json:"top_pages"`
}

// SectionCount is the number of pages in a section.
type SectionCount struct {
	Section string `json:"section"`
	Pages   int    `json:"pages"`
}

// SectionStat summarizes one section.
type SectionStat struct {
	Section     string   `json:"section"`
	PageCount   int      `json:"page_count"`
	TotalWords  int      `json:"total_words"`
	AvgWords    float64  `json:"avg_words"`
	Subsections []string `json:"subsections"`
}

// StatsService computes statistics from the current store content.
// Nothing is cached.
type StatsService interface {
	// Stats returns global statistics with the five largest sections by page
	// count and the ten largest pages by word count.
	Stats(ctx context.Context) (*Stats, error)

	// SectionStats returns per-section statistics ordered by page count
	// descending then section name.
	SectionStats(ctx context.Context) ([]*SectionStat, error)
}
