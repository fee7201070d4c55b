package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdb"
)

// Ensure LinkExtractor implements docdb.LinkExtractor at compile time.
var _ docdb.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects the outgoing same-host links of a page.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns links in document order, deduplicated by resolved
// URL with the first anchor text kept. Links to other hosts, links back to
// the page itself and non-HTTP links are skipped.
func (e *LinkExtractor) ExtractLinks(pageURL, html string) ([]*docdb.RecordLink, error) {
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return nil, docdb.Errorf(docdb.EINVALID, "invalid page URL %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdb.Errorf(docdb.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	links := make([]*docdb.RecordLink, 0)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] || !isSameHost(base, resolved) {
			return
		}
		seen[resolved] = true

		links = append(links, &docdb.RecordLink{
			Href: resolved,
			Text: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns an empty string for unparsable hrefs and links to base itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
