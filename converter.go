package docdb

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g. from an Extractor) into Markdown.
	// Relative links are resolved against pageURL when it is not empty.
	Convert(pageURL, html string) (string, error)
}
