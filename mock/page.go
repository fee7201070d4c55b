package mock

import (
	"context"

	"github.com/fwojciec/docdb"
)

// Compile-time interface verification.
var (
	_ docdb.PageService  = (*PageService)(nil)
	_ docdb.LinkService  = (*LinkService)(nil)
	_ docdb.StatsService = (*StatsService)(nil)
)

// PageService is a mock implementation of docdb.PageService.
type PageService struct {
	UpsertPageFn    func(ctx context.Context, page *docdb.Page) error
	FindPageByURLFn func(ctx context.Context, url string) (*docdb.Page, error)
	FindPagesFn     func(ctx context.Context, filter docdb.PageFilter) ([]*docdb.PageSummary, error)
	ListSectionsFn  func(ctx context.Context) ([]string, error)
	DeletePageFn    func(ctx context.Context, url string) error
}

func (s *PageService) UpsertPage(ctx context.Context, page *docdb.Page) error {
	return s.UpsertPageFn(ctx, page)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*docdb.Page, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter docdb.PageFilter) ([]*docdb.PageSummary, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) ListSections(ctx context.Context) ([]string, error) {
	return s.ListSectionsFn(ctx)
}

func (s *PageService) DeletePage(ctx context.Context, url string) error {
	return s.DeletePageFn(ctx, url)
}

// LinkService is a mock implementation of docdb.LinkService.
type LinkService struct {
	AddLinkFn   func(ctx context.Context, link *docdb.Link) error
	FindLinksFn func(ctx context.Context, filter docdb.LinkFilter) ([]*docdb.Link, error)
}

func (s *LinkService) AddLink(ctx context.Context, link *docdb.Link) error {
	return s.AddLinkFn(ctx, link)
}

func (s *LinkService) FindLinks(ctx context.Context, filter docdb.LinkFilter) ([]*docdb.Link, error) {
	return s.FindLinksFn(ctx, filter)
}

// StatsService is a mock implementation of docdb.StatsService.
type StatsService struct {
	StatsFn        func(ctx context.Context) (*docdb.Stats, error)
	SectionStatsFn func(ctx context.Context) ([]*docdb.SectionStat, error)
}

func (s *StatsService) Stats(ctx context.Context) (*docdb.Stats, error) {
	return s.StatsFn(ctx)
}

func (s *StatsService) SectionStats(ctx context.Context) ([]*docdb.SectionStat, error) {
	return s.SectionStatsFn(ctx)
}
