// Package mcp exposes the documentation services as Model Context Protocol
// tools over any MCP transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/docdb"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolSearch   = "search_documentation"
	ToolSections = "get_documentation_sections"
	ToolPage     = "get_page_content"
	ToolBrowse   = "browse_section"
	ToolStats    = "get_documentation_stats"
	ToolContext  = "build_context"
)

// InfoURI is the URI of the resource describing the database.
const InfoURI = "documentation://info"

// Server serves the documentation services to MCP clients.
type Server struct {
	// Name is reported to clients and used as the heading of the info
	// resource.
	Name    string
	Version string

	Config docdb.Config

	Pages    docdb.PageService
	Search   docdb.SearchService
	Stats    docdb.StatsService
	Contexts docdb.ContextBuilder
}

// NewServer returns a Server with the given configuration. Services must be
// set before calling Run.
func NewServer(config docdb.Config) *Server {
	return &Server{
		Name:    "docdb",
		Version: "dev",
		Config:  config,
	}
}

// Run serves requests on the transport until the client disconnects or ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, transport gomcp.Transport) error {
	return s.Handler().Run(ctx, transport)
}

// Handler returns a protocol server with every tool and resource registered.
func (s *Server) Handler() *gomcp.Server {
	srv := gomcp.NewServer(&gomcp.Implementation{Name: s.Name, Version: s.Version}, nil)

	addTool(srv, &gomcp.Tool{
		Name:        ToolSearch,
		Description: "Search through documentation content. Returns matching pages with snippets, best match first.",
		InputSchema: inputSchema(map[string]any{
			"query":             map[string]any{"type": "string", "description": "Search query text"},
			"limit":             map[string]any{"type": "integer", "description": fmt.Sprintf("Maximum number of results (default %d, max %d)", s.Config.SearchLimit, s.Config.MaxSearchLimit)},
			"section":           map[string]any{"type": "string", "description": "Only search within this section"},
			"include_full_urls": map[string]any{"type": "boolean", "description": "Add absolute URLs when a base URL is configured (default true)"},
		}, []string{"query"}),
	}, s.search)

	addTool(srv, &gomcp.Tool{
		Name:        ToolSections,
		Description: "List all documentation sections with page and word counts.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, s.sections)

	addTool(srv, &gomcp.Tool{
		Name:        ToolPage,
		Description: "Get the full markdown content of a documentation page.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "URL of the page"},
		}, []string{"url"}),
	}, s.page)

	addTool(srv, &gomcp.Tool{
		Name:        ToolBrowse,
		Description: "List the pages of a documentation section, largest first.",
		InputSchema: inputSchema(map[string]any{
			"section": map[string]any{"type": "string", "description": "Name of the section"},
			"limit":   map[string]any{"type": "integer", "description": fmt.Sprintf("Maximum number of pages (default %d, max %d)", s.Config.SectionLimit, s.Config.MaxSectionLimit)},
		}, []string{"section"}),
	}, s.browse)

	addTool(srv, &gomcp.Tool{
		Name:        ToolStats,
		Description: "Get overall statistics about the documentation database.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, s.stats)

	addTool(srv, &gomcp.Tool{
		Name:        ToolContext,
		Description: "Assemble the documentation most relevant to a question into a single word-budgeted text.",
		InputSchema: inputSchema(map[string]any{
			"question":  map[string]any{"type": "string", "description": "Natural language question"},
			"max_words": map[string]any{"type": "integer", "description": fmt.Sprintf("Word budget (default %d)", s.Config.ContextMaxWords)},
		}, []string{"question"}),
	}, s.buildContext)

	srv.AddResource(&gomcp.Resource{
		URI:         InfoURI,
		Name:        "documentation_info",
		Description: "General information about this documentation database",
		MIMEType:    "text/markdown",
	}, s.info)

	return srv
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// addTool registers fn as a tool whose arguments decode into In and whose
// result is returned to the client as JSON text.
func addTool[In any](srv *gomcp.Server, tool *gomcp.Tool, fn func(context.Context, In) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
		var in In
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &in); err != nil {
				return toolError(docdb.Errorf(docdb.EINVALID, "invalid arguments: %v", err)), nil
			}
		}

		out, err := fn(ctx, in)
		if err != nil {
			return toolError(err), nil
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return toolError(fmt.Errorf("marshal: %w", err)), nil
		}
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// toolError reports err to the client as a tool failure. Internal errors
// are not exposed verbatim.
func toolError(err error) *gomcp.CallToolResult {
	var res gomcp.CallToolResult
	res.SetError(fmt.Errorf("%s: %s", docdb.ErrorCode(err), docdb.ErrorMessage(err)))
	return &res
}

type searchArgs struct {
	Query           string `json:"query"`
	Limit           int    `json:"limit"`
	Section         string `json:"section"`
	IncludeFullURLs *bool  `json:"include_full_urls"`
}

func (s *Server) search(ctx context.Context, args searchArgs) (any, error) {
	results, err := s.Search.Search(ctx, args.Query, docdb.SearchOptions{
		Limit:   args.Limit,
		Section: args.Section,
	})
	if err != nil {
		return nil, err
	}
	if args.IncludeFullURLs != nil && !*args.IncludeFullURLs {
		for _, r := range results {
			r.FullURL = ""
		}
	}
	if results == nil {
		results = []*docdb.SearchResult{}
	}
	return results, nil
}

func (s *Server) sections(ctx context.Context, _ struct{}) (any, error) {
	sections, err := s.Stats.SectionStats(ctx)
	if err != nil {
		return nil, err
	}
	if sections == nil {
		sections = []*docdb.SectionStat{}
	}
	return sections, nil
}

type pageArgs struct {
	URL string `json:"url"`
}

// pageDoc is the page as returned to clients; the HTML snapshot is omitted.
type pageDoc struct {
	URL        string    `json:"url"`
	FullURL    string    `json:"full_url,omitempty"`
	Title      string    `json:"title"`
	Section    string    `json:"section"`
	Subsection string    `json:"subsection"`
	WordCount  int       `json:"word_count"`
	Markdown   string    `json:"markdown"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

func (s *Server) page(ctx context.Context, args pageArgs) (any, error) {
	if args.URL == "" {
		return nil, docdb.Errorf(docdb.EINVALID, "url required")
	}
	p, err := s.Pages.FindPageByURL(ctx, args.URL)
	if err != nil {
		return nil, err
	}
	doc := &pageDoc{
		URL:        p.URL,
		Title:      p.Title,
		Section:    p.Section,
		Subsection: p.Subsection,
		WordCount:  p.WordCount,
		Markdown:   p.Markdown,
		ScrapedAt:  p.ScrapedAt,
	}
	if s.Config.BaseURL != "" {
		doc.FullURL = s.Config.FullURL(p.URL)
	}
	return doc, nil
}

type browseArgs struct {
	Section string `json:"section"`
	Limit   int    `json:"limit"`
}

func (s *Server) browse(ctx context.Context, args browseArgs) (any, error) {
	pages, err := s.Pages.FindPages(ctx, docdb.PageFilter{
		Section: &args.Section,
		Limit:   args.Limit,
	})
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []*docdb.PageSummary{}
	}
	return pages, nil
}

// statsDoc extends the global statistics with server information.
type statsDoc struct {
	*docdb.Stats
	DatabaseName string       `json:"database_name"`
	BaseURL      string       `json:"base_url,omitempty"`
	ServerConfig serverConfig `json:"server_config"`
}

type serverConfig struct {
	SearchLimit     int  `json:"search_limit"`
	MaxSearchLimit  int  `json:"max_search_limit"`
	SectionLimit    int  `json:"section_limit"`
	MaxSectionLimit int  `json:"max_section_limit"`
	Fallback        bool `json:"fallback"`
}

func (s *Server) stats(ctx context.Context, _ struct{}) (any, error) {
	stats, err := s.Stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &statsDoc{
		Stats:        stats,
		DatabaseName: s.Name,
		BaseURL:      s.Config.BaseURL,
		ServerConfig: serverConfig{
			SearchLimit:     s.Config.SearchLimit,
			MaxSearchLimit:  s.Config.MaxSearchLimit,
			SectionLimit:    s.Config.SectionLimit,
			MaxSectionLimit: s.Config.MaxSectionLimit,
			Fallback:        s.Config.EnableFallback,
		},
	}, nil
}

type contextArgs struct {
	Question string `json:"question"`
	MaxWords int    `json:"max_words"`
}

type contextDoc struct {
	Question string `json:"question"`
	Words    int    `json:"words"`
	Context  string `json:"context"`
}

func (s *Server) buildContext(ctx context.Context, args contextArgs) (any, error) {
	if strings.TrimSpace(args.Question) == "" {
		return nil, docdb.Errorf(docdb.EINVALID, "question required")
	}
	text, err := s.Contexts.BuildContext(ctx, args.Question, args.MaxWords)
	if err != nil {
		return nil, err
	}
	return &contextDoc{
		Question: args.Question,
		Words:    docdb.CountWords(text),
		Context:  text,
	}, nil
}

func (s *Server) info(ctx context.Context, req *gomcp.ReadResourceRequest) (*gomcp.ReadResourceResult, error) {
	stats, err := s.Stats.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &gomcp.ReadResourceResult{
		Contents: []*gomcp.ResourceContents{{
			URI:      InfoURI,
			MIMEType: "text/markdown",
			Text:     FormatInfo(s.Name, stats, s.Config),
		}},
	}, nil
}

// FormatInfo renders the description of the database served as the info
// resource.
func FormatInfo(name string, stats *docdb.Stats, config docdb.Config) string {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "Not configured"
	}
	search := "Full-text search"
	if config.EnableFallback {
		search += " with substring fallback"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "This documentation database contains %d pages with %d total words across %d sections.\n\n",
		stats.TotalPages, stats.TotalWords, stats.SectionCount)
	fmt.Fprintf(&b, "Search capabilities: %s\n", search)
	fmt.Fprintf(&b, "Base URL: %s\n\n", baseURL)
	b.WriteString("Available tools:\n")
	fmt.Fprintf(&b, "- %s: Search for content (limit: %d)\n", ToolSearch, config.MaxSearchLimit)
	fmt.Fprintf(&b, "- %s: List all sections\n", ToolSections)
	fmt.Fprintf(&b, "- %s: Get full page content\n", ToolPage)
	fmt.Fprintf(&b, "- %s: Browse pages in a section (limit: %d)\n", ToolBrowse, config.MaxSectionLimit)
	fmt.Fprintf(&b, "- %s: Get database statistics\n", ToolStats)
	fmt.Fprintf(&b, "- %s: Assemble context for a question (default: %d words)\n", ToolContext, config.ContextMaxWords)
	return b.String()
}
