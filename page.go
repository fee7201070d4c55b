package docdb

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Page represents a single documentation page, identified by its URL.
type Page struct {
	ID          int64          `json:"-"`
	URL         string         `json:"url"`
	Title       string         `json:"title"`
	Content     string         `json:"content,omitempty"` // HTML snapshot
	Markdown    string         `json:"markdown"`
	WordCount   int            `json:"word_count"`
	Section     string         `json:"section"`
	Subsection  string         `json:"subsection"`
	ContentHash string         `json:"content_hash"`
	ScrapedAt   time.Time      `json:"scraped_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	// SourceTitle is the title reported by the crawler. Derive tries it after
	// every other title strategy. It is not stored.
	SourceTitle string `json:"-"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if _, err := url.Parse(p.URL); err != nil {
		return Errorf(EINVALID, "invalid page URL %q: %v", p.URL, err)
	}
	return nil
}

// Derive recomputes every field that depends on the page URL and content:
// title, word count (when not supplied), section, subsection, content hash
// and the portable copy of those values in Metadata.
func (p *Page) Derive(titles TitleChain) error {
	section, subsection, err := SplitSections(p.URL)
	if err != nil {
		return err
	}

	p.Section = section
	p.Subsection = subsection
	if p.SourceTitle != "" {
		titles = append(titles[:len(titles):len(titles)], SuppliedTitle(p.SourceTitle))
	}
	p.Title = titles.Resolve(p.Markdown, p.Content)
	if p.WordCount <= 0 {
		p.WordCount = CountWords(p.Markdown)
	}
	p.ContentHash = HashContent(p.Markdown)

	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}
	p.Metadata["url"] = p.URL
	p.Metadata["title"] = p.Title
	p.Metadata["word_count"] = p.WordCount
	p.Metadata["section"] = p.Section
	p.Metadata["subsection"] = p.Subsection

	return nil
}

// Summary returns the listing view of the page.
func (p *Page) Summary() *PageSummary {
	return &PageSummary{
		URL:        p.URL,
		Title:      p.Title,
		Section:    p.Section,
		Subsection: p.Subsection,
		WordCount:  p.WordCount,
	}
}

// PageSummary is the listing view of a page, without its content.
type PageSummary struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	WordCount  int    `json:"word_count"`
}

// SplitSections derives the section and subsection of a page from the first
// and second non-empty segments of its URL path. Missing segments are empty.
func SplitSections(rawURL string) (section, subsection string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", Errorf(EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	var parts []string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
		if len(parts) == 2 {
			break
		}
	}

	if len(parts) > 0 {
		section = parts[0]
	}
	if len(parts) > 1 {
		subsection = parts[1]
	}
	return section, subsection, nil
}

// CountWords returns the number of whitespace-separated tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// PageService represents the record store for pages.
//
// UpsertPage and DeletePage keep the full-text index synchronized with the
// page table inside the same transaction.
type PageService interface {
	// UpsertPage writes the page, replacing any existing page with the same
	// URL. All derived fields are recomputed.
	UpsertPage(ctx context.Context, page *Page) error

	// FindPageByURL retrieves a page by URL.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByURL(ctx context.Context, url string) (*Page, error)

	// FindPages retrieves page summaries matching the filter, ordered by
	// word count descending then URL ascending.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageSummary, error)

	// ListSections returns the distinct non-empty sections in ascending order.
	ListSections(ctx context.Context) ([]string, error)

	// DeletePage permanently removes a page.
	// Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, url string) error
}

// PageFilter represents a filter for FindPages. A nil Section matches every
// page; a non-nil Section matches exactly, including the empty section.
type PageFilter struct {
	Section *string `json:"section"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
