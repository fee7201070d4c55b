// Package ingest turns crawler output into stored pages and links. Records
// are prepared concurrently (HTML extraction, conversion, cleaning) and
// written one at a time in input order.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docdb"
	"golang.org/x/sync/errgroup"
)

// Ingester stores crawler records.
type Ingester struct {
	Pages docdb.PageService
	Links docdb.LinkService

	// Extractors are tried in order on records without markdown; the first
	// one returning content wins. Without a match the whole HTML is converted.
	Extractors []docdb.Extractor
	Converter  docdb.Converter

	// LinkExtractor finds links on records that carry HTML but no links.
	LinkExtractor docdb.LinkExtractor

	// Cleaner, if set, strips boilerplate from markdown before storage.
	Cleaner *docdb.Cleaner

	Concurrency int
}

// Result holds the outcome of an ingestion run.
type Result struct {
	Saved    int        `json:"saved"`
	Failed   int        `json:"failed"`
	Links    int        `json:"links"`
	Words    int        `json:"words"`
	Failures []*Failure `json:"failures,omitempty"`
}

// Failure records why one record was not stored.
type Failure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ProgressEvent reports progress during an ingestion run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress.
type ProgressFunc func(event ProgressEvent)

// prepared is a record ready to be written.
type prepared struct {
	page  *docdb.Page
	links []*docdb.Link
	err   error
}

// ReadRecords decodes a stream of JSON records, one object per line or
// simply concatenated.
func ReadRecords(r io.Reader) ([]*docdb.Record, error) {
	dec := json.NewDecoder(r)
	var records []*docdb.Record
	for {
		var rec docdb.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, docdb.Errorf(docdb.EINVALID, "record %d: %v", len(records)+1, err)
		}
		records = append(records, &rec)
	}
}

// Ingest stores a single record and its links.
func (in *Ingester) Ingest(ctx context.Context, rec *docdb.Record) (*docdb.Page, error) {
	p := in.prepare(rec)
	if p.err != nil {
		return nil, p.err
	}
	if _, err := in.store(ctx, p); err != nil {
		return nil, err
	}
	return p.page, nil
}

// IngestAll stores every record. A record that fails is counted and
// reported through progress; the run continues with the next record.
// Only context cancellation stops the run early.
func (in *Ingester) IngestAll(ctx context.Context, records []*docdb.Record, progress ProgressFunc) (*Result, error) {
	total := len(records)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := in.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*prepared, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = in.prepare(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, p := range results {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		url := records[i].URL
		err := p.err
		if err == nil {
			var links int
			links, err = in.store(ctx, p)
			res.Links += links
		}
		done := i + 1

		if err != nil {
			res.Failed++
			res.Failures = append(res.Failures, &Failure{URL: url, Error: err.Error()})
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: done, Total: total, URL: url, Error: err})
			}
			continue
		}

		res.Saved++
		res.Words += p.page.WordCount
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, URL: url})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

// prepare builds the page and links of a record without touching storage.
func (in *Ingester) prepare(rec *docdb.Record) *prepared {
	if err := rec.Validate(); err != nil {
		return &prepared{err: err}
	}

	markdown := rec.Markdown
	wordCount := rec.WordCount
	if strings.TrimSpace(markdown) == "" && strings.TrimSpace(rec.HTML) != "" {
		md, err := in.convert(rec.URL, rec.HTML)
		if err != nil {
			return &prepared{err: err}
		}
		markdown, wordCount = md, 0
	}

	if in.Cleaner != nil {
		if cleaned := in.Cleaner.Clean(markdown); cleaned != markdown {
			markdown, wordCount = cleaned, 0
		}
	}

	page := &docdb.Page{
		URL:         rec.URL,
		Content:     rec.HTML,
		Markdown:    markdown,
		WordCount:   wordCount,
		SourceTitle: rec.Title,
	}

	recLinks := rec.Links
	if len(recLinks) == 0 && rec.HTML != "" && in.LinkExtractor != nil {
		// Records with relative URLs cannot resolve links; store without them.
		if found, err := in.LinkExtractor.ExtractLinks(rec.URL, rec.HTML); err == nil {
			recLinks = found
		}
	}

	links := make([]*docdb.Link, 0, len(recLinks))
	for _, l := range recLinks {
		if l == nil || l.Href == "" {
			continue
		}
		links = append(links, &docdb.Link{FromURL: rec.URL, ToURL: l.Href, AnchorText: strings.TrimSpace(l.Text)})
	}

	return &prepared{page: page, links: links}
}

// convert turns crawled HTML into markdown through the extractor chain.
func (in *Ingester) convert(pageURL, rawHTML string) (string, error) {
	if in.Converter == nil {
		return "", docdb.Errorf(docdb.EINVALID, "record %s has no markdown and no converter is configured", pageURL)
	}

	content := rawHTML
	for _, e := range in.Extractors {
		result, err := e.Extract(pageURL, rawHTML)
		if err == nil && strings.TrimSpace(result.ContentHTML) != "" {
			content = result.ContentHTML
			break
		}
	}

	md, err := in.Converter.Convert(pageURL, content)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", pageURL, err)
	}
	return md, nil
}

// store writes a prepared page, then its links. It returns the number of
// links submitted.
func (in *Ingester) store(ctx context.Context, p *prepared) (int, error) {
	if err := in.Pages.UpsertPage(ctx, p.page); err != nil {
		return 0, err
	}
	if in.Links == nil {
		return 0, nil
	}
	for _, l := range p.links {
		if err := in.Links.AddLink(ctx, l); err != nil {
			return 0, fmt.Errorf("add link %s: %w", l.ToURL, err)
		}
	}
	return len(p.links), nil
}
