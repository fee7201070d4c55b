package goquery_test

import (
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	ext := goquery.NewLinkExtractor()

	t.Run("resolves and deduplicates same-host links", func(t *testing.T) {
		t.Parallel()

		html := `<nav>
<a href="/guides/setup">Setup</a>
<a href="../reference/api#auth">  API
 reference</a>
<a href="/guides/setup#top">Setup again</a>
<a href="https://other.example.com/x">Elsewhere</a>
<a href="mailto:docs@example.com">Mail</a>
<a href="#section">Same page</a>
</nav>`

		links, err := ext.ExtractLinks("https://docs.example.com/guides/intro", html)

		require.NoError(t, err)
		assert.Equal(t, []*docdb.RecordLink{
			{Href: "https://docs.example.com/guides/setup", Text: "Setup"},
			{Href: "https://docs.example.com/reference/api", Text: "API reference"},
		}, links)
	})

	t.Run("returns empty list for page without links", func(t *testing.T) {
		t.Parallel()

		links, err := ext.ExtractLinks("https://docs.example.com/", "<p>text</p>")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("returns EINVALID for relative page URL", func(t *testing.T) {
		t.Parallel()

		_, err := ext.ExtractLinks("/guides/intro", "<a href='/x'>x</a>")

		require.Error(t, err)
		assert.Equal(t, docdb.EINVALID, docdb.ErrorCode(err))
	})
}
