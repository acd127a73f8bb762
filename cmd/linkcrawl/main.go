package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/goquery"
	lchttp "github.com/fwojciec/linkcrawl/http"
	lcslog "github.com/fwojciec/linkcrawl/slog"
	"github.com/fwojciec/linkcrawl/sqlite"
	"github.com/fwojciec/linkcrawl/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Default configuration file. A missing file is ignored.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService linkcrawl.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: filepath.Join(xdg.ConfigHome, "linkcrawl", "config.yaml"),
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
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkcrawl"),
		kong.Description("Crawl every page reachable from a seed URL within a URL prefix"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(yaml.Loader, m.ConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkcrawl --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd != "crawl" || cli.Crawl.Save {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LINKCRAWL_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.Runs = m.RunService
		if cli.Verbose {
			deps.Runs = lcslog.NewLoggingRunService(deps.Runs, deps.Logger)
		}
	}

	if cmd == "crawl" {
		fetcher := lchttp.NewFetcher(
			lchttp.WithTimeout(cli.Crawl.Timeout),
			lchttp.WithUserAgent(cli.Crawl.UserAgent),
		)
		defer fetcher.Close()

		extractor, err := goquery.NewExtractor(goquery.WithSelector(cli.Crawl.Selector))
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
			return err
		}

		deps.Fetcher = fetcher
		deps.Extractor = extractor
		if cli.Verbose {
			deps.Fetcher = lcslog.NewLoggingFetcher(deps.Fetcher, deps.Logger)
			deps.Extractor = lcslog.NewLoggingExtractor(deps.Extractor, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LINKCRAWL_DB"); path != "" {
		return path
	}
	path, err := xdg.DataFile(filepath.Join("linkcrawl", "linkcrawl.db"))
	if err != nil {
		return "linkcrawl.db"
	}
	return path
}
