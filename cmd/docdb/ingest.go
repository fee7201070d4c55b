package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/ingest"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	var r io.Reader = deps.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		r = f
	}

	records, err := ingest.ReadRecords(r)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	progress := func(event ingest.ProgressEvent) {
		switch event.Type {
		case ingest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Ingesting %d records\n", event.Total)
		case ingest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", ingest.TruncateURL(event.URL, 60), docdb.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Ingester.IngestAll(deps.Ctx, records, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error ingesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s words, %d links)\n",
		result.Saved, formatCount(result.Words), result.Links)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Failed %d pages\n", result.Failed)
	}
	return nil
}

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
