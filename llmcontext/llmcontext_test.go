package llmcontext_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/llmcontext"
	"github.com/fwojciec/docdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words returns a markdown body of n words.
func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// fixture wires mock services over an in-memory corpus. hits maps a search
// term to the URLs it returns, in order.
type fixture struct {
	pages    map[string]*docdb.Page
	hits     map[string][]string
	searched []string
}

func (f *fixture) builder(cfg docdb.Config) *llmcontext.Builder {
	search := &mock.SearchService{
		SearchFn: func(_ context.Context, query string, opts docdb.SearchOptions) ([]*docdb.SearchResult, error) {
			f.searched = append(f.searched, query)
			var results []*docdb.SearchResult
			for _, url := range f.hits[query] {
				if len(results) == opts.Limit {
					break
				}
				results = append(results, &docdb.SearchResult{URL: url})
			}
			return results, nil
		},
	}
	pages := &mock.PageService{
		FindPageByURLFn: func(_ context.Context, url string) (*docdb.Page, error) {
			p, ok := f.pages[url]
			if !ok {
				return nil, docdb.Errorf(docdb.ENOTFOUND, "page not found")
			}
			return p, nil
		},
	}
	return llmcontext.NewBuilder(search, pages, cfg)
}

func page(url, title string, n int) *docdb.Page {
	return &docdb.Page{URL: url, Title: title, Markdown: words(n), WordCount: n}
}

func TestBuilder_Terms(t *testing.T) {
	t.Parallel()

	b := llmcontext.NewBuilder(nil, nil, docdb.DefaultConfig())

	t.Run("drops stop words and short words", func(t *testing.T) {
		t.Parallel()

		terms := b.Terms("How do I configure the web server?")

		assert.Equal(t, []string{"configure", "server"}, terms)
	})

	t.Run("puts domain keywords first in keyword order", func(t *testing.T) {
		t.Parallel()

		terms := b.Terms("Is there a reference or tutorial for plugins?")

		assert.Equal(t, []string{"tutorial", "reference", "there", "plugins"}, terms)
	})

	t.Run("deduplicates and limits to five terms", func(t *testing.T) {
		t.Parallel()

		terms := b.Terms("alpha alpha bravo charlie delta echoes foxtrot")

		assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echoes"}, terms)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()

		terms := b.Terms("GUIDE to Deployment")

		assert.Equal(t, []string{"guide", "deployment"}, terms)
	})
}

func TestBuilder_BuildContext(t *testing.T) {
	t.Parallel()

	t.Run("joins documents in term priority order", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"a": page("a", "Alpha", 10),
				"b": page("b", "Bravo", 10),
			},
			hits: map[string][]string{"tutorial": {"b"}, "deploy": {"a"}},
		}

		got, err := f.builder(docdb.DefaultConfig()).BuildContext(context.Background(), "deploy tutorial", 500)

		require.NoError(t, err)
		want := "## Bravo\n\n" + words(10) + docdb.ContextSeparator + "## Alpha\n\n" + words(10)
		assert.Equal(t, want, got)
		assert.Equal(t, []string{"tutorial", "deploy"}, f.searched)
	})

	t.Run("includes a document found by two terms once at its first position", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"d": page("d", "Shared", 5),
				"x": page("x", "Other", 5),
			},
			hits: map[string][]string{"install": {"d"}, "upgrade": {"x", "d"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "install upgrade", 500)

		require.NoError(t, err)
		require.Len(t, a.Parts, 2)
		assert.Equal(t, "d", a.Parts[0].URL)
		assert.Equal(t, "x", a.Parts[1].URL)
		assert.Equal(t, 1, strings.Count(a.Text, "## Shared"))
	})

	t.Run("limits results per term", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"1": page("1", "One", 1), "2": page("2", "Two", 1),
				"3": page("3", "Three", 1), "4": page("4", "Four", 1),
			},
			hits: map[string][]string{"query": {"1", "2", "3", "4"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "query", 500)

		require.NoError(t, err)
		assert.Len(t, a.Parts, 3)
	})

	t.Run("never exceeds budget with full documents", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"a": page("a", "A", 300),
				"b": page("b", "B", 150),
				"c": page("c", "C", 40),
			},
			hits: map[string][]string{"term": {"a", "b", "c"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "term", 500)

		require.NoError(t, err)
		full := 0
		for _, p := range a.Parts {
			if !p.Truncated {
				full += p.Words
			}
		}
		assert.LessOrEqual(t, full, 500)
		require.Len(t, a.Parts, 3)
		assert.False(t, a.Parts[2].Truncated)
	})

	t.Run("truncates the first document that does not fit when budget allows", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"a": page("a", "A", 300),
				"b": page("b", "B", 400),
				"c": page("c", "C", 10),
			},
			hits: map[string][]string{"term": {"a", "b", "c"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "term", 500)

		require.NoError(t, err)
		require.Len(t, a.Parts, 2)
		assert.False(t, a.Parts[0].Truncated)
		assert.True(t, a.Parts[1].Truncated)
		assert.Equal(t, 200, a.Parts[1].Words)
		assert.True(t, strings.HasSuffix(a.Text, "word..."))
	})

	t.Run("skips truncation when remaining budget is small", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{
				"a": page("a", "A", 450),
				"b": page("b", "B", 400),
				"c": page("c", "C", 10),
			},
			hits: map[string][]string{"term": {"a", "b", "c"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "term", 500)

		require.NoError(t, err)
		require.Len(t, a.Parts, 1)
		assert.Equal(t, "a", a.Parts[0].URL)
	})

	t.Run("uses default budget when zero", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{"a": page("a", "A", 3000)},
			hits:  map[string][]string{"term": {"a"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "term", 0)

		require.NoError(t, err)
		require.Len(t, a.Parts, 1)
		assert.False(t, a.Parts[0].Truncated)
	})

	t.Run("skips pages that disappeared", func(t *testing.T) {
		t.Parallel()

		f := &fixture{
			pages: map[string]*docdb.Page{"b": page("b", "B", 5)},
			hits:  map[string][]string{"term": {"gone", "b"}},
		}

		a, err := f.builder(docdb.DefaultConfig()).Assemble(context.Background(), "term", 500)

		require.NoError(t, err)
		require.Len(t, a.Parts, 1)
		assert.Equal(t, "b", a.Parts[0].URL)
	})

	t.Run("returns empty string when nothing matches", func(t *testing.T) {
		t.Parallel()

		f := &fixture{hits: map[string][]string{}}

		got, err := f.builder(docdb.DefaultConfig()).BuildContext(context.Background(), "nothing here", 500)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("propagates search errors", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, string, docdb.SearchOptions) ([]*docdb.SearchResult, error) {
				return nil, docdb.Errorf(docdb.EUNAVAILABLE, "search index unavailable")
			},
		}
		b := llmcontext.NewBuilder(search, &mock.PageService{}, docdb.DefaultConfig())

		_, err := b.BuildContext(context.Background(), "configure", 500)

		require.Error(t, err)
		assert.Equal(t, docdb.EUNAVAILABLE, docdb.ErrorCode(err))
	})

	t.Run("propagates page errors", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, string, docdb.SearchOptions) ([]*docdb.SearchResult, error) {
				return []*docdb.SearchResult{{URL: "a"}}, nil
			},
		}
		pages := &mock.PageService{
			FindPageByURLFn: func(context.Context, string) (*docdb.Page, error) {
				return nil, errors.New("disk error")
			},
		}
		b := llmcontext.NewBuilder(search, pages, docdb.DefaultConfig())

		_, err := b.BuildContext(context.Background(), "configure", 500)

		require.Error(t, err)
	})
}
