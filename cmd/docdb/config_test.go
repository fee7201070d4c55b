package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docdb"
	main "github.com/fwojciec/docdb/cmd/docdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		settings, err := main.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, docdb.DefaultConfig(), settings.Config)
		assert.Empty(t, settings.Name)
	})

	t.Run("overrides defaults from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docdb.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
name: React Docs
model: gemini-2.5-pro
base_url: https://react.dev
search_limit: 5
enable_fallback: false
domain_keywords: [hook, component]
`), 0644))

		settings, err := main.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "React Docs", settings.Name)
		assert.Equal(t, "gemini-2.5-pro", settings.Model)
		assert.Equal(t, "https://react.dev", settings.BaseURL)
		assert.Equal(t, 5, settings.SearchLimit)
		assert.False(t, settings.EnableFallback)
		assert.Equal(t, []string{"hook", "component"}, settings.DomainKeywords)
		assert.Equal(t, 50, settings.MaxSearchLimit)
		assert.Equal(t, docdb.DefaultStopWords, settings.StopWords)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Equal(t, docdb.EINVALID, docdb.ErrorCode(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docdb.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search_limit: [\n"), 0644))

		_, err := main.LoadConfig(path)

		assert.Equal(t, docdb.EINVALID, docdb.ErrorCode(err))
	})
}
