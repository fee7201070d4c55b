package main

import (
	"fmt"

	"github.com/fwojciec/docdb"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	filter := docdb.LinkFilter{FromURL: &c.URL, Limit: c.Limit}
	if c.Incoming {
		filter = docdb.LinkFilter{ToURL: &c.URL, Limit: c.Limit}
	}

	links, err := deps.Links.FindLinks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, links)
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No links found")
		return nil
	}

	for _, l := range links {
		other := l.ToURL
		if c.Incoming {
			other = l.FromURL
		}
		if l.AnchorText != "" {
			fmt.Fprintf(deps.Stdout, "%s  %q\n", deps.Config.FullURL(other), l.AnchorText)
		} else {
			fmt.Fprintln(deps.Stdout, deps.Config.FullURL(other))
		}
	}
	return nil
}
