package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdb"
	"github.com/fwojciec/docdb/fs"
	"github.com/fwojciec/docdb/gemini"
	"github.com/fwojciec/docdb/goquery"
	"github.com/fwojciec/docdb/htmltomarkdown"
	"github.com/fwojciec/docdb/ingest"
	"github.com/fwojciec/docdb/llmcontext"
	"github.com/fwojciec/docdb/mcp"
	"github.com/fwojciec/docdb/readability"
	docslog "github.com/fwojciec/docdb/slog"
	"github.com/fwojciec/docdb/sqlite"
	"github.com/fwojciec/docdb/trafilatura"
	"google.golang.org/genai"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor DOCDB_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stdin is read by commands given "-" as a file name.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdb"),
		kong.Description("Index crawled documentation and serve search and LLM context."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdb --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	settings, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", docdb.ErrorMessage(err))
		return err
	}
	deps.Config = settings.Config

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCDB_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	// Core services, each wrapped with logging.
	titles := docdb.TitleChain{docdb.MarkdownTitle{}, goquery.NewTitleExtractor()}
	pages := docslog.NewLoggingPageService(sqlite.NewPageService(m.DB, deps.Config, titles), logger)
	search := docslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB, deps.Config), logger)
	stats := docslog.NewLoggingStatsService(sqlite.NewStatsService(m.DB), logger)
	contexts := docslog.NewLoggingContextBuilder(llmcontext.NewBuilder(search, pages, deps.Config), logger)

	deps.Pages = pages
	deps.Links = docslog.NewLoggingLinkService(sqlite.NewLinkService(m.DB, deps.Config), logger)
	deps.Search = search
	deps.Stats = stats
	deps.Contexts = contexts

	switch cmd {
	case "ingest":
		cleaner, err := docdb.NewCleaner(deps.Config.RemovePatterns, deps.Config.MaxConsecutiveNewlines)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", docdb.ErrorMessage(err))
			return err
		}
		deps.Ingester = &ingest.Ingester{
			Pages:         pages,
			Links:         deps.Links,
			Extractors:    []docdb.Extractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			Converter:     htmltomarkdown.NewConverter(),
			LinkExtractor: goquery.NewLinkExtractor(),
			Cleaner:       cleaner,
			Concurrency:   cli.Ingest.Concurrency,
		}

	case "export":
		deps.Exporter = docslog.NewLoggingExporter(&fs.Exporter{
			Pages:   pages,
			Stats:   stats,
			BaseURL: deps.Config.BaseURL,
		}, logger)

	case "serve":
		srv := mcp.NewServer(deps.Config)
		srv.Version = version
		if settings.Name != "" {
			srv.Name = settings.Name
		}
		srv.Pages = pages
		srv.Search = search
		srv.Stats = stats
		srv.Contexts = contexts
		deps.MCP = srv

	case "ask":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		asker := gemini.NewAsker(client, contexts)
		if settings.Model != "" {
			asker.Model = settings.Model
		}
		if settings.Name != "" {
			asker.Domain = settings.Name
		}
		asker.MaxWords = cli.Ask.MaxWords
		deps.Asker = docslog.NewLoggingAsker(asker, logger)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "docdb.db"
	}
	return filepath.Join(home, ".docdb", "docdb.db")
}
