package docdb

import "context"

// Link represents a directed edge between two pages. The source page is not
// required to exist: a crawl may discover a link before its target.
type Link struct {
	FromURL    string `json:"from_url"`
	ToURL      string `json:"to_url"`
	AnchorText string `json:"anchor_text"`
}

// Validate returns an error if the link contains invalid fields.
func (l *Link) Validate() error {
	if l.FromURL == "" {
		return Errorf(EINVALID, "link source URL required")
	}
	if l.ToURL == "" {
		return Errorf(EINVALID, "link target URL required")
	}
	return nil
}

// LinkService represents a service for managing links between pages.
type LinkService interface {
	// AddLink stores the link unless a link with the same source and target
	// already exists, in which case it does nothing.
	AddLink(ctx context.Context, link *Link) error

	// FindLinks retrieves links matching the filter in insertion order.
	FindLinks(ctx context.Context, filter LinkFilter) ([]*Link, error)
}

// LinkFilter represents a filter for FindLinks.
type LinkFilter struct {
	FromURL *string `json:"from_url"`
	ToURL   *string `json:"to_url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
