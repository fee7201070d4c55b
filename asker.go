package docdb

import "context"

// Asker provides natural language question answering over documentation.
type Asker interface {
	// Ask answers a natural language question using the indexed documentation.
	// Returns ENOTFOUND if no documentation matches the question.
	Ask(ctx context.Context, question string) (string, error)
}
