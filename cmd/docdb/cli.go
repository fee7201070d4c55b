package main

import (
	"context"
	"io"

	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/ingest"
	"github.com/fwojciec/docdb/mcp"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config docdb.Config

	Pages    docdb.PageService
	Links    docdb.LinkService
	Search   docdb.SearchService
	Stats    docdb.StatsService
	Contexts docdb.ContextBuilder

	// Wired only for the commands that need them.
	Ingester *ingest.Ingester
	Exporter docdb.Exporter
	Asker    docdb.Asker
	MCP      *mcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"DOCDB_DB" help:"Database path (default ~/.docdb/docdb.db)"`
	Config  string `name:"config" env:"DOCDB_CONFIG" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`

	Ingest   IngestCmd   `cmd:"" help:"Ingest crawled pages from a JSON lines file"`
	Search   SearchCmd   `cmd:"" help:"Search the documentation"`
	Section  SectionCmd  `cmd:"" help:"List the pages of a section"`
	Sections SectionsCmd `cmd:"" help:"List sections with statistics"`
	Page     PageCmd     `cmd:"" help:"Show a page"`
	Links    LinksCmd    `cmd:"" help:"List links from or to a page"`
	Stats    StatsCmd    `cmd:"" help:"Show database statistics"`
	Context  ContextCmd  `cmd:"" help:"Assemble LLM context for a question"`
	Export   ExportCmd   `cmd:"" help:"Export the documentation to files"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about the documentation"`
	Serve    ServeCmd    `cmd:"" help:"Serve MCP tools over stdio"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a page"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	File        string `arg:"" help:"JSON lines file of crawled pages, or - for stdin"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent HTML conversion limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	Limit   int    `short:"n" help:"Maximum number of results"`
	Section string `short:"s" help:"Only search within this section"`
	JSON    bool   `help:"Print results as JSON"`
}

// SectionCmd is the "section" subcommand.
type SectionCmd struct {
	Name  string `arg:"" help:"Section name"`
	Limit int    `short:"n" help:"Maximum number of pages"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct{}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `help:"Print the page as JSON"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Incoming bool   `short:"i" help:"List links pointing to the page instead"`
	Limit    int    `short:"n" help:"Maximum number of links"`
	JSON     bool   `help:"Print links as JSON"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	JSON bool `help:"Print statistics as JSON"`
}

// ContextCmd is the "context" subcommand.
type ContextCmd struct {
	Question string `arg:"" help:"Question to assemble context for"`
	MaxWords int    `short:"w" help:"Word budget"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Output directory (replaced)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
	MaxWords int    `short:"w" help:"Context word budget"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Force bool   `help:"Confirm deletion"`
}
