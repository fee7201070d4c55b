// Package readability extracts the main content of documentation pages with
// go-readability. It serves as the fallback when trafilatura finds nothing.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/docdb"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docdb.Extractor at compile time.
var _ docdb.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(pageURL, rawHTML string) (*docdb.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdb.Errorf(docdb.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, docdb.Errorf(docdb.ENOTFOUND, "no main content in %s", pageURL)
	}

	return &docdb.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
