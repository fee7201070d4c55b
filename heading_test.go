package docdb_test

import (
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/stretchr/testify/assert"
)

func TestExtractHeadings(t *testing.T) {
	t.Parallel()

	t.Run("extracts H1 heading", func(t *testing.T) {
		t.Parallel()

		headings := docdb.ExtractHeadings("# Introduction\n\nSome content here.")

		assert.Len(t, headings, 1)
		assert.Equal(t, 1, headings[0].Level)
		assert.Equal(t, "Introduction", headings[0].Title)
		assert.Equal(t, "introduction", headings[0].Anchor)
	})

	t.Run("extracts H2 through H6 headings", func(t *testing.T) {
		t.Parallel()

		markdown := `# H1 Title
## H2 Title
### H3 Title
#### H4 Title
##### H5 Title
###### H6 Title`

		headings := docdb.ExtractHeadings(markdown)

		assert.Len(t, headings, 6)
		for i, h := range headings {
			assert.Equal(t, i+1, h.Level)
		}
	})

	t.Run("handles duplicate headings with numeric suffixes", func(t *testing.T) {
		t.Parallel()

		headings := docdb.ExtractHeadings("# Example\n## Example\n### Example")

		assert.Len(t, headings, 3)
		assert.Equal(t, "example", headings[0].Anchor)
		assert.Equal(t, "example-1", headings[1].Anchor)
		assert.Equal(t, "example-2", headings[2].Anchor)
	})

	t.Run("returns empty for markdown without headings", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, docdb.ExtractHeadings(""))
		assert.Empty(t, docdb.ExtractHeadings("Just some text\n\nWith paragraphs."))
	})

	t.Run("ignores code blocks with hash symbols", func(t *testing.T) {
		t.Parallel()

		markdown := "# Real Heading\n\n```bash\n# This is a comment\necho hello\n```\n\n## Another Real Heading"

		headings := docdb.ExtractHeadings(markdown)

		assert.Len(t, headings, 2)
		assert.Equal(t, "Real Heading", headings[0].Title)
		assert.Equal(t, "Another Real Heading", headings[1].Title)
	})
}

func TestAnchor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "getting-started-with-go", docdb.Anchor("Getting Started With Go"))
	assert.Equal(t, "api-reference-v20", docdb.Anchor("API Reference (v2.0)"))
	assert.Equal(t, "guides", docdb.Anchor("Guides"))
}
