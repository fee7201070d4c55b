package mock

import "github.com/fwojciec/docdb"

var (
	_ docdb.Extractor      = (*Extractor)(nil)
	_ docdb.LinkExtractor  = (*LinkExtractor)(nil)
	_ docdb.TitleExtractor = (*TitleExtractor)(nil)
)

// Extractor is a mock implementation of docdb.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) (*docdb.ExtractResult, error)
}

func (e *Extractor) Extract(pageURL, html string) (*docdb.ExtractResult, error) {
	return e.ExtractFn(pageURL, html)
}

// LinkExtractor is a mock implementation of docdb.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(pageURL, html string) ([]*docdb.RecordLink, error)
}

func (e *LinkExtractor) ExtractLinks(pageURL, html string) ([]*docdb.RecordLink, error) {
	return e.ExtractLinksFn(pageURL, html)
}

// TitleExtractor is a mock implementation of docdb.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(markdown, html string) string
}

func (e *TitleExtractor) ExtractTitle(markdown, html string) string {
	return e.ExtractTitleFn(markdown, html)
}
