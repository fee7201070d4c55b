package docdb

// Record is one page as produced by the crawler. Markdown is expected to be
// cleaned already; when it is empty the HTML is converted during ingestion.
type Record struct {
	URL       string        `json:"url"`
	Title     string        `json:"title"`
	Markdown  string        `json:"markdown"`
	HTML      string        `json:"html"`
	WordCount int           `json:"word_count"`
	Links     []*RecordLink `json:"links"`
}

// RecordLink is an outgoing link discovered on a crawled page.
type RecordLink struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}
