package docdb

import "strings"

// Config holds the tunable limits and word lists of the engine. It is passed
// to constructors explicitly; nothing in the core reads files or environment.
type Config struct {
	// Search limits.
	SearchLimit    int `yaml:"search_limit"`
	MaxSearchLimit int `yaml:"max_search_limit"`

	// Section browsing limits.
	SectionLimit    int `yaml:"section_limit"`
	MaxSectionLimit int `yaml:"max_section_limit"`

	// Ranked snippets are centered on matches and span SnippetWords tokens
	// (at most 64). Substring snippets are the first SnippetChars characters.
	SnippetWords   int    `yaml:"snippet_words"`
	SnippetChars   int    `yaml:"snippet_chars"`
	HighlightStart string `yaml:"highlight_start"`
	HighlightEnd   string `yaml:"highlight_end"`
	Ellipsis       string `yaml:"ellipsis"`

	// Fall back to substring matching when the index is unusable or finds
	// nothing.
	EnableFallback bool `yaml:"enable_fallback"`

	// Prefix for relative page URLs in search results.
	BaseURL string `yaml:"base_url"`

	// Context assembly.
	ContextMaxWords       int      `yaml:"context_max_words"`
	ContextMaxTerms       int      `yaml:"context_max_terms"`
	ContextResultsPerTerm int      `yaml:"context_results_per_term"`
	TruncateMinWords      int      `yaml:"truncate_min_words"`
	StopWords             []string `yaml:"stop_words"`
	DomainKeywords        []string `yaml:"domain_keywords"`

	// Markdown cleaning applied during ingestion.
	RemovePatterns         []string `yaml:"remove_patterns"`
	MaxConsecutiveNewlines int      `yaml:"max_consecutive_newlines"`
}

// DefaultStopWords are dropped from questions before searching.
var DefaultStopWords = []string{
	"the", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "must", "can", "cannot",
	"a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "up", "about", "into", "through",
	"during", "before", "after", "above", "below", "between",
	"how", "what", "when", "where", "why", "which", "who",
}

// DefaultRemovePatterns strip common documentation boilerplate.
var DefaultRemovePatterns = []string{
	`<!-- .*? -->`,
	`\[Edit this page.*?\]`,
	`Table of Contents.*?\n`,
	`Skip to main content.*?\n`,
	`Previous\s+Next.*?\n`,
	`Improve this doc.*?\n`,
	`Was this helpful\?.*?\n`,
	`Rate this page.*?\n`,
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchLimit:            10,
		MaxSearchLimit:         50,
		SectionLimit:           20,
		MaxSectionLimit:        100,
		SnippetWords:           32,
		SnippetChars:           200,
		HighlightStart:         "<mark>",
		HighlightEnd:           "</mark>",
		Ellipsis:               "...",
		EnableFallback:         true,
		ContextMaxWords:        4000,
		ContextMaxTerms:        5,
		ContextResultsPerTerm:  3,
		TruncateMinWords:       100,
		StopWords:              append([]string(nil), DefaultStopWords...),
		DomainKeywords:         []string{"tutorial", "guide", "documentation", "reference"},
		RemovePatterns:         append([]string(nil), DefaultRemovePatterns...),
		MaxConsecutiveNewlines: 2,
	}
}

// Validate returns an error if the configuration contains invalid values.
func (c *Config) Validate() error {
	switch {
	case c.SearchLimit <= 0 || c.MaxSearchLimit <= 0:
		return Errorf(EINVALID, "search limits must be positive")
	case c.SearchLimit > c.MaxSearchLimit:
		return Errorf(EINVALID, "search limit %d exceeds maximum %d", c.SearchLimit, c.MaxSearchLimit)
	case c.SectionLimit <= 0 || c.MaxSectionLimit <= 0:
		return Errorf(EINVALID, "section limits must be positive")
	case c.SectionLimit > c.MaxSectionLimit:
		return Errorf(EINVALID, "section limit %d exceeds maximum %d", c.SectionLimit, c.MaxSectionLimit)
	case c.SnippetWords <= 0 || c.SnippetChars <= 0:
		return Errorf(EINVALID, "snippet sizes must be positive")
	case c.ContextMaxWords <= 0 || c.ContextMaxTerms <= 0 || c.ContextResultsPerTerm <= 0:
		return Errorf(EINVALID, "context limits must be positive")
	case c.TruncateMinWords < 0:
		return Errorf(EINVALID, "truncate minimum must not be negative")
	case c.MaxConsecutiveNewlines < 0:
		return Errorf(EINVALID, "max consecutive newlines must not be negative")
	}
	return nil
}

// SearchLimitFor returns the effective search limit for a requested limit.
func (c *Config) SearchLimitFor(limit int) int {
	return clamp(limit, c.SearchLimit, c.MaxSearchLimit)
}

// SectionLimitFor returns the effective browse limit for a requested limit.
func (c *Config) SectionLimitFor(limit int) int {
	return clamp(limit, c.SectionLimit, c.MaxSectionLimit)
}

// FullURL returns the absolute form of a stored page URL. URLs that already
// carry a scheme, and all URLs when no base URL is configured, are returned
// unchanged.
func (c *Config) FullURL(pageURL string) string {
	if c.BaseURL == "" || strings.Contains(pageURL, "://") {
		return pageURL
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(pageURL, "/")
}

func clamp(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}
