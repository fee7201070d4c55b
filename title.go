package docdb

import "strings"

// DefaultTitle is used when no title extractor finds a title.
const DefaultTitle = "Untitled"

// TitleExtractor finds a page title in one representation of the page.
// It returns an empty string when it has nothing to offer.
type TitleExtractor interface {
	ExtractTitle(markdown, html string) string
}

// TitleFunc adapts an ordinary function to a TitleExtractor.
type TitleFunc func(markdown, html string) string

// ExtractTitle calls f(markdown, html).
func (f TitleFunc) ExtractTitle(markdown, html string) string {
	return f(markdown, html)
}

// TitleChain tries title extractors in order. The first non-empty title wins.
type TitleChain []TitleExtractor

// Resolve returns the first title found by the chain, or DefaultTitle.
func (c TitleChain) Resolve(markdown, html string) string {
	for _, e := range c {
		if title := strings.TrimSpace(e.ExtractTitle(markdown, html)); title != "" {
			return title
		}
	}
	return DefaultTitle
}

// MarkdownTitle extracts the first level-1 markdown heading.
type MarkdownTitle struct{}

// ExtractTitle implements TitleExtractor.
func (MarkdownTitle) ExtractTitle(markdown, _ string) string {
	for _, h := range ExtractHeadings(markdown) {
		if h.Level == 1 {
			return h.Title
		}
	}
	return ""
}

// SuppliedTitle is a title known before extraction, such as the one a
// crawler reports.
type SuppliedTitle string

// ExtractTitle implements TitleExtractor.
func (t SuppliedTitle) ExtractTitle(_, _ string) string {
	return string(t)
}
