package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/docdb"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// GeneralSection holds pages whose URL has no section.
const GeneralSection = "general"

// Export file and directory names.
const (
	DumpFile    = "documentation.json"
	SummaryFile = "summary.json"
	ContextDir  = "llm_context"
	MasterFile  = "documentation_complete.md"
	PagesDir    = "pages"
)

const (
	pageBatch          = 100
	defaultConcurrency = 8
)

// Ensure Exporter implements docdb.Exporter at compile time.
var _ docdb.Exporter = (*Exporter)(nil)

// Exporter writes the store content to dir:
//
//	documentation.json              every page
//	summary.json                    global and per-section statistics
//	llm_context/<section>.md        pages of one section
//	llm_context/documentation_complete.md
//	pages/<url path>.md             one file per page with front matter
//
// Everything is read through the page and stats services. Files are written
// to a sibling temporary directory that replaces dir once complete.
type Exporter struct {
	Pages   docdb.PageService
	Stats   docdb.StatsService
	BaseURL string

	// Concurrency bounds page reads and file writes.
	Concurrency int

	// Now returns the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// sectionPages are the pages of one exported section, sorted by title.
type sectionPages struct {
	name  string
	pages []*docdb.Page
}

// Export implements docdb.Exporter.
func (e *Exporter) Export(ctx context.Context, dir string) (*docdb.ExportSummary, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	generated := now().UTC()
	id := uuid.NewString()

	sections, err := e.collect(ctx)
	if err != nil {
		return nil, err
	}

	dir = filepath.Clean(dir)
	tmp := dir + ".tmp-" + id[:8]
	if err := os.MkdirAll(filepath.Join(tmp, ContextDir), 0755); err != nil {
		return nil, err
	}

	summary := &docdb.ExportSummary{ID: id, Dir: dir}
	for _, s := range sections {
		summary.Sections = append(summary.Sections, s.name)
		summary.Pages += len(s.pages)
	}

	if err := e.write(ctx, tmp, sections, generated, summary); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	if err := os.RemoveAll(dir); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}
	if err := os.Rename(tmp, dir); err != nil {
		os.RemoveAll(tmp)
		return nil, err
	}

	sort.Strings(summary.Files)
	return summary, nil
}

// collect reads every page grouped by section. Sections are browsed in
// batches until exhausted; pages without a section go to GeneralSection.
func (e *Exporter) collect(ctx context.Context) ([]*sectionPages, error) {
	names, err := e.Pages.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	bySection := make(map[string][]*docdb.PageSummary)
	for _, section := range append([]string{""}, names...) {
		key := section
		if key == "" {
			key = GeneralSection
		}
		for offset := 0; ; {
			batch, err := e.Pages.FindPages(ctx, docdb.PageFilter{Section: &section, Offset: offset, Limit: pageBatch})
			if err != nil {
				return nil, err
			}
			if len(batch) == 0 {
				break
			}
			bySection[key] = append(bySection[key], batch...)
			offset += len(batch)
		}
	}

	keys := make([]string, 0, len(bySection))
	for k := range bySection {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sections := make([]*sectionPages, len(keys))
	for i, k := range keys {
		summaries := bySection[k]
		s := &sectionPages{name: k, pages: make([]*docdb.Page, len(summaries))}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency())
		for j, ps := range summaries {
			g.Go(func() error {
				p, err := e.Pages.FindPageByURL(gctx, ps.URL)
				if err != nil {
					return fmt.Errorf("read %s: %w", ps.URL, err)
				}
				s.pages[j] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		sort.SliceStable(s.pages, func(a, b int) bool {
			if s.pages[a].Title != s.pages[b].Title {
				return s.pages[a].Title < s.pages[b].Title
			}
			return s.pages[a].URL < s.pages[b].URL
		})
		sections[i] = s
	}

	return sections, nil
}

func (e *Exporter) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return defaultConcurrency
}

func (e *Exporter) write(ctx context.Context, tmp string, sections []*sectionPages, generated time.Time, summary *docdb.ExportSummary) error {
	files := make(map[string][]byte)
	put := func(rel string, data []byte) error {
		if _, ok := files[rel]; ok {
			return docdb.Errorf(docdb.EINTERNAL, "export file %s written twice", rel)
		}
		files[rel] = data
		return nil
	}

	var all []*docdb.Page
	var urls, sectionNames []string
	for _, s := range sections {
		all = append(all, s.pages...)
		sectionNames = append(sectionNames, s.name)
		for _, p := range s.pages {
			urls = append(urls, p.URL)
		}
	}
	paths, err := PagePaths(urls)
	if err != nil {
		return err
	}

	names := SectionFiles(sectionNames)
	for _, s := range sections {
		if err := put(filepath.Join(ContextDir, names[s.name]), []byte(FormatSection(s.name, s.pages, generated))); err != nil {
			return err
		}
		for _, p := range s.pages {
			doc, err := FormatPage(p)
			if err != nil {
				return err
			}
			if err := put(filepath.Join(PagesDir, filepath.FromSlash(paths[p.URL])), doc); err != nil {
				return err
			}
		}
	}
	if all == nil {
		all = []*docdb.Page{}
	}

	dump, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := put(DumpFile, dump); err != nil {
		return err
	}
	if err := put(filepath.Join(ContextDir, MasterFile), []byte(e.formatMaster(sections, summary.Pages, generated))); err != nil {
		return err
	}

	stats, err := e.summary(ctx, summary.ID, generated)
	if err != nil {
		return err
	}
	if err := put(SummaryFile, stats); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())
	for rel, data := range files {
		summary.Files = append(summary.Files, filepath.ToSlash(rel))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(tmp, rel)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			return os.WriteFile(path, data, 0644)
		})
	}
	return g.Wait()
}

// SectionFiles returns the file name under ContextDir of every section. A
// section whose file would replace the master file gets a suffix.
func SectionFiles(sections []string) map[string]string {
	taken := map[string]bool{MasterFile: true}
	names := make(map[string]string, len(sections))
	for _, section := range sections {
		name := section + ".md"
		for n := 1; taken[name]; n++ {
			name = fmt.Sprintf("%s_section%d.md", section, n)
		}
		taken[name] = true
		names[section] = name
	}
	return names
}

// summaryDoc is the content of summary.json.
type summaryDoc struct {
	ExportID    string               `json:"export_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	BaseURL     string               `json:"base_url,omitempty"`
	Stats       *docdb.Stats         `json:"stats"`
	Sections    []*docdb.SectionStat `json:"sections"`
}

func (e *Exporter) summary(ctx context.Context, id string, generated time.Time) ([]byte, error) {
	stats, err := e.Stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := e.Stats.SectionStats(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(&summaryDoc{
		ExportID:    id,
		GeneratedAt: generated,
		BaseURL:     e.BaseURL,
		Stats:       stats,
		Sections:    sections,
	}, "", "  ")
}

// FormatSection renders the markdown file of one section.
func FormatSection(section string, pages []*docdb.Page, generated time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Documentation: %s\n\n", SectionTitle(section))
	fmt.Fprintf(&b, "Generated on: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total pages: %d\n\n", len(pages))
	b.WriteString("---\n\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "## %s\n\n", p.Title)
		fmt.Fprintf(&b, "**URL:** %s\n\n", p.URL)
		if p.Subsection != "" {
			fmt.Fprintf(&b, "**Subsection:** %s\n\n", p.Subsection)
		}
		b.WriteString(p.Markdown)
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

func (e *Exporter) formatMaster(sections []*sectionPages, total int, generated time.Time) string {
	var b strings.Builder
	b.WriteString("# Documentation - Complete Reference\n\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total pages: %d\n", total)
	if e.BaseURL != "" {
		fmt.Fprintf(&b, "Base URL: %s\n", e.BaseURL)
	}
	b.WriteString("\n## Table of Contents\n\n")
	for _, s := range sections {
		title := SectionTitle(s.name)
		fmt.Fprintf(&b, "- [%s](#%s)\n", title, docdb.Anchor(title))
	}
	b.WriteString("\n---\n\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "# %s\n\n", SectionTitle(s.name))
		for _, p := range s.pages {
			fmt.Fprintf(&b, "## %s\n\n", p.Title)
			fmt.Fprintf(&b, "**URL:** %s\n\n", p.URL)
			b.WriteString(p.Markdown)
			b.WriteString("\n\n")
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

// frontMatter is the YAML header of an exported page file.
type frontMatter struct {
	Source     string    `yaml:"source"`
	Title      string    `yaml:"title"`
	Section    string    `yaml:"section,omitempty"`
	Subsection string    `yaml:"subsection,omitempty"`
	Words      int       `yaml:"words"`
	Hash       string    `yaml:"hash"`
	Scraped    time.Time `yaml:"scraped"`
}

// FormatPage renders a page as markdown with YAML front matter.
func FormatPage(p *docdb.Page) ([]byte, error) {
	header, err := yaml.Marshal(&frontMatter{
		Source:     p.URL,
		Title:      p.Title,
		Section:    p.Section,
		Subsection: p.Subsection,
		Words:      p.WordCount,
		Hash:       p.ContentHash,
		Scraped:    p.ScrapedAt.UTC(),
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(p.Markdown)
	b.WriteString("\n")
	return []byte(b.String()), nil
}
