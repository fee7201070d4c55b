package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/fs"
	"github.com/fwojciec/docdb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func setupStore(t *testing.T, pages ...*docdb.Page) (*sqlite.PageService, *sqlite.StatsService) {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	cfg := docdb.DefaultConfig()
	cfg.SectionLimit = 2
	cfg.MaxSectionLimit = 2
	svc := sqlite.NewPageService(db, cfg, nil)
	for _, p := range pages {
		require.NoError(t, svc.UpsertPage(context.Background(), p))
	}
	return svc, sqlite.NewStatsService(db)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	pages := []*docdb.Page{
		{URL: "https://x/guides/setup/", Markdown: "# Setup\n\nInstall it."},
		{URL: "https://x/guides/deploy", Markdown: "# Deploy\n\nShip it."},
		{URL: "https://x/guides/build", Markdown: "# Build\n\nCompile it."},
		{URL: "https://x/reference/api", Markdown: "# API\n\nCall it."},
		{URL: "https://x/", Markdown: "# Home\n\nWelcome."},
	}

	t.Run("writes every export file", func(t *testing.T) {
		t.Parallel()

		svc, stats := setupStore(t, pages...)
		dir := filepath.Join(t.TempDir(), "export")
		exp := &fs.Exporter{Pages: svc, Stats: stats, BaseURL: "https://x", Now: fixedNow}

		summary, err := exp.Export(context.Background(), dir)

		require.NoError(t, err)
		assert.Equal(t, 5, summary.Pages)
		assert.Equal(t, []string{"general", "guides", "reference"}, summary.Sections)
		assert.NotEmpty(t, summary.ID)
		assert.Contains(t, summary.Files, "documentation.json")
		assert.Contains(t, summary.Files, "llm_context/guides.md")
		assert.Contains(t, summary.Files, "pages/guides/setup/index.md")

		var dump []*docdb.Page
		require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(dir, fs.DumpFile))), &dump))
		assert.Len(t, dump, 5, "browsing in batches must reach every page")

		guides := readFile(t, filepath.Join(dir, fs.ContextDir, "guides.md"))
		assert.True(t, strings.HasPrefix(guides, "# Documentation: Guides\n\nGenerated on: 2026-01-02T03:04:05Z\nTotal pages: 3\n"))
		build := strings.Index(guides, "## Build")
		deploy := strings.Index(guides, "## Deploy")
		setup := strings.Index(guides, "## Setup")
		assert.True(t, build < deploy && deploy < setup, "pages sorted by title")
		assert.Contains(t, guides, "**Subsection:** setup")

		general := readFile(t, filepath.Join(dir, fs.ContextDir, "general.md"))
		assert.Contains(t, general, "## Home")

		master := readFile(t, filepath.Join(dir, fs.ContextDir, fs.MasterFile))
		assert.Contains(t, master, "Total pages: 5\nBase URL: https://x\n")
		assert.Contains(t, master, "- [Guides](#guides)\n- [Reference](#reference)\n")
		assert.Contains(t, master, "\n# Reference\n\n## API\n")

		var sum map[string]any
		require.NoError(t, json.Unmarshal([]byte(readFile(t, filepath.Join(dir, fs.SummaryFile))), &sum))
		assert.Equal(t, summary.ID, sum["export_id"])
		assert.Len(t, sum["sections"], 2)

		page := readFile(t, filepath.Join(dir, fs.PagesDir, "reference", "api.md"))
		assert.True(t, strings.HasPrefix(page, "---\nsource: https://x/reference/api\ntitle: API\n"))
		assert.True(t, strings.HasSuffix(page, "---\n\n# API\n\nCall it.\n"))
	})

	t.Run("replaces previous export and leaves no temporary directory", func(t *testing.T) {
		t.Parallel()

		svc, stats := setupStore(t, pages[0])
		parent := t.TempDir()
		dir := filepath.Join(parent, "export")
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.md"), []byte("old"), 0644))
		exp := &fs.Exporter{Pages: svc, Stats: stats, Now: fixedNow}

		_, err := exp.Export(context.Background(), dir)
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "stale.md"))
		assert.True(t, os.IsNotExist(err))

		entries, err := os.ReadDir(parent)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "export", entries[0].Name())
	})

	t.Run("exports empty store", func(t *testing.T) {
		t.Parallel()

		svc, stats := setupStore(t)
		dir := filepath.Join(t.TempDir(), "export")
		exp := &fs.Exporter{Pages: svc, Stats: stats, Now: fixedNow}

		summary, err := exp.Export(context.Background(), dir)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.Pages)
		assert.Equal(t, "[]", readFile(t, filepath.Join(dir, fs.DumpFile)))
	})

	t.Run("keeps files whose names collide", func(t *testing.T) {
		t.Parallel()

		svc, stats := setupStore(t,
			&docdb.Page{URL: "https://a.example/docs/x", Markdown: "# A\n\nfrom a"},
			&docdb.Page{URL: "https://b.example/docs/x", Markdown: "# B\n\nfrom b"},
			&docdb.Page{URL: "https://x/documentation_complete/p", Markdown: "# P\n\npage p"},
		)
		dir := filepath.Join(t.TempDir(), "export")
		exp := &fs.Exporter{Pages: svc, Stats: stats, Now: fixedNow}

		summary, err := exp.Export(context.Background(), dir)

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Pages)
		assert.Contains(t, readFile(t, filepath.Join(dir, fs.PagesDir, "a.example", "docs", "x.md")), "from a")
		assert.Contains(t, readFile(t, filepath.Join(dir, fs.PagesDir, "b.example", "docs", "x.md")), "from b")

		section := readFile(t, filepath.Join(dir, fs.ContextDir, "documentation_complete_section1.md"))
		assert.Contains(t, section, "## P")
		master := readFile(t, filepath.Join(dir, fs.ContextDir, fs.MasterFile))
		assert.Contains(t, master, "Complete Reference")
		assert.Contains(t, master, "page p")
	})
}
