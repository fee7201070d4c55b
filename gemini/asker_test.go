package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/gemini"
	"github.com/fwojciec/docdb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for empty question", func(t *testing.T) {
		t.Parallel()

		asker := gemini.NewAsker(nil, nil)

		_, err := asker.Ask(context.Background(), "  ")

		require.Error(t, err)
		assert.Equal(t, docdb.EINVALID, docdb.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when no context matches", func(t *testing.T) {
		t.Parallel()

		contexts := &mock.ContextBuilder{
			BuildContextFn: func(context.Context, string, int) (string, error) {
				return "", nil
			},
		}
		asker := gemini.NewAsker(nil, contexts) // nil client ok for this test

		_, err := asker.Ask(context.Background(), "how do I deploy?")

		require.Error(t, err)
		assert.Equal(t, docdb.ENOTFOUND, docdb.ErrorCode(err))
	})

	t.Run("passes budget and propagates context errors", func(t *testing.T) {
		t.Parallel()

		var gotMax int
		contexts := &mock.ContextBuilder{
			BuildContextFn: func(_ context.Context, _ string, maxWords int) (string, error) {
				gotMax = maxWords
				return "", docdb.Errorf(docdb.EUNAVAILABLE, "search index unavailable")
			},
		}
		asker := gemini.NewAsker(nil, contexts)
		asker.MaxWords = 1500

		_, err := asker.Ask(context.Background(), "how do I deploy?")

		require.Error(t, err)
		assert.Equal(t, docdb.EUNAVAILABLE, docdb.ErrorCode(err))
		assert.Equal(t, 1500, gotMax)
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("Kubernetes docs")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Kubernetes docs")
	require.NotNil(t, config.Temperature)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("## Setup\n\nInstall it.", "How do I install?")

	assert.Equal(t, "<documentation>\n## Setup\n\nInstall it.\n</documentation>\n\nQuestion: How do I install?", prompt)
}
