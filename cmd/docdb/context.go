package main

import (
	"fmt"

	"github.com/fwojciec/docdb"
)

// Run executes the context command.
func (c *ContextCmd) Run(deps *Dependencies) error {
	text, err := deps.Contexts.BuildContext(deps.Ctx, c.Question, c.MaxWords)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if text == "" {
		fmt.Fprintf(deps.Stderr, "No documentation found for %q\n", c.Question)
		return nil
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
