package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docPage = `<!DOCTYPE html>
<html>
<head>
<title>Configuration | Example Docs</title>
<meta property="og:title" content="Configuration">
</head>
<body>
<nav class="navbar"><a href="/">Home</a><a href="/guides">Guides</a></nav>
<main>
<article>
<h1>Configuration</h1>
<p>The configuration file controls search limits, snippet sizes and the fallback behaviour of the engine.</p>
<h2>Options</h2>
<table>
<tr><th>Option</th><th>Default</th></tr>
<tr><td>search_limit</td><td>10</td></tr>
</table>
<p>Every option can be overridden from the command line when running queries.</p>
</article>
</main>
<footer><p>Copyright 2026 Example Corp</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	ext := trafilatura.NewExtractor()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		result, err := ext.Extract("https://docs.example.com/guides/configuration", docPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "controls search limits")
		assert.Contains(t, result.ContentHTML, "overridden from the command line")
		assert.NotContains(t, result.ContentHTML, "Copyright 2026 Example Corp")
	})

	t.Run("keeps tables", func(t *testing.T) {
		t.Parallel()

		result, err := ext.Extract("", docPage)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "search_limit")
	})

	t.Run("reads title from metadata", func(t *testing.T) {
		t.Parallel()

		result, err := ext.Extract("", docPage)

		require.NoError(t, err)
		assert.Contains(t, result.Title, "Configuration")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := ext.Extract("https://docs.example.com/", "")

		require.Error(t, err)
		assert.Equal(t, docdb.EINVALID, docdb.ErrorCode(err))
	})
}
