package docdb_test

import (
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/stretchr/testify/assert"
)

func TestFormatContextPart(t *testing.T) {
	t.Parallel()

	part := docdb.FormatContextPart("Getting Started", "Welcome to the docs.")

	assert.Equal(t, "## Getting Started\n\nWelcome to the docs.", part)
}

func TestTruncateWords(t *testing.T) {
	t.Parallel()

	t.Run("keeps short text unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "one two\nthree", docdb.TruncateWords("one two\nthree", 3, "..."))
	})

	t.Run("cuts to n words and appends ellipsis", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "one two...", docdb.TruncateWords("one  two\nthree four", 2, "..."))
	})
}
