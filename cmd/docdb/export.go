package main

import (
	"fmt"

	"github.com/fwojciec/docdb"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	summary, err := deps.Exporter.Export(deps.Ctx, c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages in %d sections to %s (%d files)\n",
		summary.Pages, len(summary.Sections), summary.Dir, len(summary.Files))
	return nil
}
