package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkUpsertPage measures page writes including index maintenance.
func BenchmarkUpsertPage(b *testing.B) {
	b.Run("insert", func(b *testing.B) {
		benchmarkUpserts(b, false)
	})

	b.Run("replace", func(b *testing.B) {
		benchmarkUpserts(b, true)
	})
}

func benchmarkUpserts(b *testing.B, replace bool) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	svc := sqlite.NewPageService(db, docdb.DefaultConfig(), nil)
	ctx := context.Background()
	markdown := "# Page\n\n" + strings.Repeat("lorem ipsum dolor sit amet ", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		url := fmt.Sprintf("https://example.com/docs/page%d", i)
		if replace {
			url = "https://example.com/docs/page"
		}
		if err := svc.UpsertPage(ctx, &docdb.Page{URL: url, Markdown: markdown}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch measures ranked queries over a populated index.
func BenchmarkSearch(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	cfg := docdb.DefaultConfig()
	pages := sqlite.NewPageService(db, cfg, nil)
	ctx := context.Background()
	for i := 0; i < 500; i++ {
		md := fmt.Sprintf("# Page %d\n\nconfiguration guide number %d %s", i, i, strings.Repeat("filler ", i%50))
		require.NoError(b, pages.UpsertPage(ctx, &docdb.Page{
			URL:      fmt.Sprintf("https://example.com/section%d/page%d", i%10, i),
			Markdown: md,
		}))
	}
	search := sqlite.NewSearchService(db, cfg)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Search(ctx, "configuration guide", docdb.SearchOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
