package slog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/mock"
	docslog "github.com/fwojciec/docdb/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPageService_UpsertPage(t *testing.T) {
	t.Parallel()

	t.Run("logs url and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		inner := &mock.PageService{
			UpsertPageFn: func(ctx context.Context, page *docdb.Page) error {
				return nil
			},
		}

		svc := docslog.NewLoggingPageService(inner, logger)
		err := svc.UpsertPage(context.Background(), &docdb.Page{URL: "/docs/a", Section: "docs"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "upsert page")
		assert.Contains(t, output, "url=/docs/a")
		assert.Contains(t, output, "section=docs")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newTestLogger()
		inner := &mock.PageService{
			UpsertPageFn: func(ctx context.Context, page *docdb.Page) error {
				return errors.New("disk full")
			},
		}

		svc := docslog.NewLoggingPageService(inner, logger)
		err := svc.UpsertPage(context.Background(), &docdb.Page{URL: "/docs/a"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}

func TestLoggingPageService_FindPages(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.PageService{
		FindPagesFn: func(ctx context.Context, filter docdb.PageFilter) ([]*docdb.PageSummary, error) {
			return []*docdb.PageSummary{{URL: "/a"}, {URL: "/b"}}, nil
		},
	}
	section := "guide"

	svc := docslog.NewLoggingPageService(inner, logger)
	pages, err := svc.FindPages(context.Background(), docdb.PageFilter{Section: &section, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, pages, 2)
	output := buf.String()
	assert.Contains(t, output, "find pages")
	assert.Contains(t, output, "section=guide")
	assert.Contains(t, output, "count=2")
}

func TestLoggingPageService_DeletePage(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.PageService{
		DeletePageFn: func(ctx context.Context, url string) error {
			return docdb.Errorf(docdb.ENOTFOUND, "page not found")
		},
	}

	svc := docslog.NewLoggingPageService(inner, logger)
	err := svc.DeletePage(context.Background(), "/missing")

	assert.Equal(t, docdb.ENOTFOUND, docdb.ErrorCode(err))
	output := buf.String()
	assert.Contains(t, output, "delete page")
	assert.Contains(t, output, "url=/missing")
	assert.Contains(t, output, "page not found")
}

func TestLoggingPageService_PassesThroughReads(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger()
	inner := &mock.PageService{
		FindPageByURLFn: func(ctx context.Context, url string) (*docdb.Page, error) {
			return &docdb.Page{URL: url, Title: "A"}, nil
		},
		ListSectionsFn: func(ctx context.Context) ([]string, error) {
			return []string{"api", "guide"}, nil
		},
	}

	svc := docslog.NewLoggingPageService(inner, logger)
	page, err := svc.FindPageByURL(context.Background(), "/a")
	require.NoError(t, err)
	assert.Equal(t, "A", page.Title)

	sections, err := svc.ListSections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "guide"}, sections)

	output := buf.String()
	assert.Contains(t, output, "find page")
	assert.Contains(t, output, "list sections")
	assert.Contains(t, output, "count=2")
}
