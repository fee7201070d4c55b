package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/docdb"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Search(deps.Ctx, c.Query, docdb.SearchOptions{
		Limit:   c.Limit,
		Section: c.Section,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, results)
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", c.Query)
		return nil
	}

	for i, r := range results {
		url := r.URL
		if r.FullURL != "" {
			url = r.FullURL
		}
		fmt.Fprintf(deps.Stdout, "%d. %s (%s, %d words)\n   %s\n", i+1, r.Title, sectionLabel(r.Section), r.WordCount, url)
		if r.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", docdb.TruncateWords(r.Snippet, 40, deps.Config.Ellipsis))
		}
		fmt.Fprintln(deps.Stdout)
	}
	if results[0].Mode == docdb.SearchModeSubstring {
		fmt.Fprintln(deps.Stdout, "(substring matches)")
	}
	return nil
}

// Run executes the section command.
func (c *SectionCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, docdb.PageFilter{
		Section: &c.Name,
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages in section %q. Use 'docdb sections' to see available sections.\n", c.Name)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages in %s (%d shown):\n\n", c.Name, len(pages))
	for i, p := range pages {
		fmt.Fprintf(deps.Stdout, "  %d. %s (%d words)\n     %s\n", i+1, p.Title, p.WordCount, p.URL)
	}
	return nil
}

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	sections, err := deps.Stats.SectionStats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if len(sections) == 0 {
		fmt.Fprintln(deps.Stdout, "No sections found. Use 'docdb ingest' to add pages.")
		return nil
	}

	for _, s := range sections {
		fmt.Fprintf(deps.Stdout, "%-24s %4d pages %10s words  avg %.1f\n",
			s.Section, s.PageCount, formatCount(s.TotalWords), s.AvgWords)
	}
	return nil
}

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.FindPageByURL(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if c.JSON {
		page.Content = ""
		return writeJSON(deps.Stdout, page)
	}

	fmt.Fprintf(deps.Stdout, "%s\n%s\n", page.Title, deps.Config.FullURL(page.URL))
	fmt.Fprintf(deps.Stdout, "Section: %s / %s, %d words, scraped %s\n\n",
		sectionLabel(page.Section), sectionLabel(page.Subsection), page.WordCount,
		page.ScrapedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(deps.Stdout, page.Markdown)
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Stats.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, stats)
	}

	fmt.Fprintf(deps.Stdout, "Pages:    %s\n", formatCount(stats.TotalPages))
	fmt.Fprintf(deps.Stdout, "Words:    %s (avg %.1f per page)\n", formatCount(stats.TotalWords), stats.AvgWordsPerPage)
	fmt.Fprintf(deps.Stdout, "Sections: %d\n", stats.SectionCount)

	if len(stats.TopSections) > 0 {
		fmt.Fprintln(deps.Stdout, "\nTop sections:")
		for _, s := range stats.TopSections {
			fmt.Fprintf(deps.Stdout, "  %-24s %d pages\n", s.Section, s.Pages)
		}
	}
	if len(stats.TopPages) > 0 {
		fmt.Fprintln(deps.Stdout, "\nLargest pages:")
		for _, p := range stats.TopPages {
			fmt.Fprintf(deps.Stdout, "  %6d  %s\n", p.WordCount, p.URL)
		}
	}
	return nil
}

func sectionLabel(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
