// Package goquery reads titles and links from crawled HTML with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdb"
)

// Ensure TitleExtractor implements docdb.TitleExtractor at compile time.
var _ docdb.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor resolves a page title from the HTML <title> element.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the text of the first <title> element with runs of
// whitespace collapsed, or an empty string.
func (e *TitleExtractor) ExtractTitle(_, html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
