// Package trafilatura extracts the main content of documentation pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/docdb"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docdb.Extractor at compile time.
var _ docdb.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Tables and links are kept because
// documentation relies on both; comment sections are dropped.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeLinks:    true,
		},
	}
}

// Extract processes raw HTML and returns the main content.
// Returns EINVALID for empty input and ENOTFOUND when no content is found.
func (e *Extractor) Extract(pageURL, rawHTML string) (*docdb.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, docdb.Errorf(docdb.EINVALID, "empty HTML input")
	}

	opts := e.opts
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, docdb.Errorf(docdb.ENOTFOUND, "no main content in %s", pageURL)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &docdb.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
