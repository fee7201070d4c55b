package docdb

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, without navigation,
	// footers or sidebars.
	ContentHTML string
}

// Extractor extracts the main content of a crawled HTML page. It is used
// during ingestion of records that carry HTML but no markdown. pageURL is
// used to resolve relative references and may be empty.
type Extractor interface {
	Extract(pageURL, html string) (*ExtractResult, error)
}

// LinkExtractor finds outgoing links in a crawled HTML page. It is used
// during ingestion of records that carry HTML but no link list.
type LinkExtractor interface {
	ExtractLinks(pageURL, html string) ([]*RecordLink, error)
}
