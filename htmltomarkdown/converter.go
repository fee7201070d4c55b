// Package htmltomarkdown converts extracted HTML to markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/docdb"
)

// Ensure Converter implements docdb.Converter at compile time.
var _ docdb.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown with GitHub-flavored tables and
// strikethrough.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Relative links and images
// are made absolute using the scheme and host of pageURL.
func (c *Converter) Convert(pageURL, html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docdb.Errorf(docdb.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if u, perr := url.Parse(pageURL); perr == nil && u.Host != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(u.Scheme+"://"+u.Host))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
