package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/toolindex/toolindex"
	"github.com/toolindex/toolindex/crawl"
	"github.com/toolindex/toolindex/fetchfox"
	"github.com/toolindex/toolindex/fs"
	tigoquery "github.com/toolindex/toolindex/goquery"
	tihttp "github.com/toolindex/toolindex/http"
	"github.com/toolindex/toolindex/openrouter"
	"github.com/toolindex/toolindex/rod"
	tizerolog "github.com/toolindex/toolindex/zerolog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration loaded from the environment. Set before calling Run()
	// to override.
	Config toolindex.Config
}

// NewMain returns a new instance of Main with configuration loaded from
// .env and the environment.
func NewMain() *Main {
	_ = godotenv.Load()
	return &Main{Config: toolindex.LoadConfig()}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("toolindex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'toolindex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.Config.Validate(); err != nil {
		fmt.Fprintln(stderr, "Hint: Check the TOOLINDEX_* environment variables")
		return fmt.Errorf("invalid configuration: %s", toolindex.ErrorMessage(err))
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	deps.Logger = logger

	store, err := fs.NewStore(m.Config.ToolsDir, m.Config.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open record store: %s", toolindex.ErrorMessage(err))
	}

	var fetcher toolindex.Fetcher = tihttp.NewClient(
		tihttp.WithTimeout(m.Config.HTTPTimeout),
		tihttp.WithRequestDelay(m.Config.RequestDelay),
		tihttp.WithRetryDelays(retryDelays(m.Config.ConnRetries)),
	)
	if cli.Render {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer browser.Close()
		fetcher = browser
	}
	fetcher = tizerolog.NewLoggingFetcher(fetcher, logger)

	structured := fetchfox.NewClient(
		m.Config.FetchFoxAPIKey,
		m.Config.FetchFoxAPIURL,
		m.Config.BaseURL,
		fetchfox.WithLogger(logger),
	)
	if m.Config.FetchFoxAPIKey == "" {
		logger.Info().Msg("FETCHFOX_API_KEY not set, extracting from HTML only")
	}

	translator := openrouter.NewTranslator(
		m.Config.OpenRouterAPIKey,
		m.Config.OpenRouterAPIURL,
		m.Config.OpenRouterModel,
		openrouter.WithLogger(logger),
	)
	if m.Config.OpenRouterAPIKey == "" {
		logger.Info().Msg("OPENROUTER_API_KEY not set, marking fields for later translation")
	}

	deps.Orchestrator = &crawl.Orchestrator{
		Paginator: &crawl.Paginator{
			Fetcher:  fetcher,
			Lists:    structured,
			BaseURL:  m.Config.BaseURL,
			MaxPages: m.Config.MaxPagesPerCategory,
			Logger:   logger,
		},
		Enricher: &crawl.Enricher{
			Store:      store,
			Structured: structured,
			Fallback:   tigoquery.NewDetailParser(fetcher, m.Config.BaseURL),
			Translator: translator,
			Logger:     logger,
		},
		Store:  store,
		Logger: logger,
	}

	return kongCtx.Run(deps)
}

// retryDelays builds the backoff schedule for n retries, doubling from one
// second.
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}
