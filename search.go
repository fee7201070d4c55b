package docdb

import "context"

// SearchMode identifies how a search result was matched.
type SearchMode string

// SearchMode constants.
const (
	// SearchModeRanked results come from the full-text index, best match first.
	SearchModeRanked SearchMode = "ranked"

	// SearchModeSubstring results come from plain containment matching,
	// ordered by word count. They carry no relevance signal.
	SearchModeSubstring SearchMode = "substring"
)

// SearchService provides full-text search over pages.
type SearchService interface {
	// Search returns pages matching query, best match first.
	// Returns EINVALID for an empty query and EUNAVAILABLE when the index
	// cannot be used and fallback is disabled.
	Search(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results; clamped to the configured maximum.
	// Zero uses the configured default.
	Limit int `json:"limit,omitempty"`

	// Restrict results to pages in this section (exact match).
	Section string `json:"section,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	URL        string     `json:"url"`
	FullURL    string     `json:"full_url,omitempty"`
	Title      string     `json:"title"`
	Section    string     `json:"section"`
	Subsection string     `json:"subsection"`
	WordCount  int        `json:"word_count"`
	Snippet    string     `json:"snippet"`
	Mode       SearchMode `json:"mode"`
}
