// Package llmcontext assembles word-budgeted documentation context for LLM
// prompts from search results.
package llmcontext

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var _ docdb.ContextBuilder = (*Builder)(nil)

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Builder implements docdb.ContextBuilder on top of a search service and
// the page store.
type Builder struct {
	search docdb.SearchService
	pages  docdb.PageService
	config docdb.Config

	stopWords map[string]bool
}

// NewBuilder creates a new Builder.
func NewBuilder(search docdb.SearchService, pages docdb.PageService, config docdb.Config) *Builder {
	stopWords := make(map[string]bool, len(config.StopWords))
	for _, w := range config.StopWords {
		stopWords[strings.ToLower(w)] = true
	}
	return &Builder{
		search:    search,
		pages:     pages,
		config:    config,
		stopWords: stopWords,
	}
}

// Part describes one document included in an assembled context.
type Part struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Words     int    `json:"words"`
	Truncated bool   `json:"truncated"`
}

// Assembly is an assembled context together with how it was built.
type Assembly struct {
	Terms []string `json:"terms"`
	Parts []*Part  `json:"parts"`
	Text  string   `json:"text"`
}

// Terms extracts the search terms of a question: configured domain keywords
// present in the question first, in keyword-list order, then the remaining
// words longer than three characters that are not stop words, in question
// order. Duplicates are dropped and at most ContextMaxTerms are returned.
func (b *Builder) Terms(question string) []string {
	words := wordRe.FindAllString(strings.ToLower(question), -1)

	present := make(map[string]bool, len(words))
	for _, w := range words {
		present[w] = true
	}

	seen := make(map[string]bool)
	terms := make([]string, 0, b.config.ContextMaxTerms)
	add := func(term string) {
		if seen[term] || len(terms) >= b.config.ContextMaxTerms {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	keywords := make(map[string]bool, len(b.config.DomainKeywords))
	for _, kw := range b.config.DomainKeywords {
		kw = strings.ToLower(kw)
		keywords[kw] = true
		if present[kw] {
			add(kw)
		}
	}
	for _, w := range words {
		if keywords[w] || b.stopWords[w] || utf8.RuneCountInString(w) <= 3 {
			continue
		}
		add(w)
	}

	return terms
}

// Assemble searches for every term of the question and greedily packs the
// unique matching documents into maxWords words. A document that does not
// fit is included once, truncated, when more than TruncateMinWords words of
// budget remain; assembly stops there either way.
func (b *Builder) Assemble(ctx context.Context, question string, maxWords int) (*Assembly, error) {
	if maxWords <= 0 {
		maxWords = b.config.ContextMaxWords
	}

	a := &Assembly{Terms: b.Terms(question), Parts: []*Part{}}

	urls, err := b.candidates(ctx, a.Terms)
	if err != nil {
		return nil, err
	}

	var texts []string
	used := 0
	for _, url := range urls {
		page, err := b.pages.FindPageByURL(ctx, url)
		if docdb.ErrorCode(err) == docdb.ENOTFOUND {
			continue
		}
		if err != nil {
			return nil, err
		}

		title := page.Title
		if title == "" {
			title = page.URL
		}

		if used+page.WordCount <= maxWords {
			texts = append(texts, docdb.FormatContextPart(title, page.Markdown))
			a.Parts = append(a.Parts, &Part{URL: page.URL, Title: title, Words: page.WordCount})
			used += page.WordCount
			continue
		}

		remaining := maxWords - used
		if remaining > b.config.TruncateMinWords {
			body := docdb.TruncateWords(page.Markdown, remaining, b.config.Ellipsis)
			texts = append(texts, docdb.FormatContextPart(title, body))
			a.Parts = append(a.Parts, &Part{URL: page.URL, Title: title, Words: docdb.CountWords(body), Truncated: true})
		}
		break
	}

	a.Text = strings.Join(texts, docdb.ContextSeparator)
	return a, nil
}

// candidates returns the URLs found for the terms, in term priority order,
// keeping the first occurrence of each URL.
func (b *Builder) candidates(ctx context.Context, terms []string) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string
	for _, term := range terms {
		results, err := b.search.Search(ctx, term, docdb.SearchOptions{Limit: b.config.ContextResultsPerTerm})
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			urls = append(urls, r.URL)
		}
	}
	return urls, nil
}

// BuildContext implements docdb.ContextBuilder.
func (b *Builder) BuildContext(ctx context.Context, question string, maxWords int) (string, error) {
	a, err := b.Assemble(ctx, question, maxWords)
	if err != nil {
		return "", err
	}
	return a.Text, nil
}
