package docdb

import "context"

// ContextBuilder assembles documentation relevant to a question into a single
// word-budgeted blob for an LLM prompt.
type ContextBuilder interface {
	// BuildContext returns the assembled context. Documents fully included
	// never sum to more than maxWords words; zero uses the configured default.
	// Returns an empty string when nothing matches.
	BuildContext(ctx context.Context, question string, maxWords int) (string, error)
}
