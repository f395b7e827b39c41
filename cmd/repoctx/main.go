package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/repoctx"
	"github.com/fwojciec/repoctx/aggregate"
	"github.com/fwojciec/repoctx/fs"
	"github.com/fwojciec/repoctx/github"
	repolog "github.com/fwojciec/repoctx/slog"
	"github.com/fwojciec/repoctx/sqlite"
	"github.com/fwojciec/repoctx/tiktoken"
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
	// Cache directory for the file-backed store. Set before calling Run().
	CacheDir string

	// SQLite database, opened only when --cache-db is given.
	DB *sqlite.DB

	// Service for end-to-end testing.
	Service repoctx.ContextService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CacheDir: defaultCacheDir(),
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
		kong.Name("repoctx"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'repoctx --help' to see available commands")
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

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Global flags may precede the command name, so the selected command
	// comes from the parse result rather than args[0].
	switch command := kongCtx.Command(); {
	case m.Service != nil:
		deps.Service = m.Service
	case strings.HasPrefix(command, "context"):
		deps.Service, err = m.buildService(logger, cli.Context.Ref, cli.Context.Encoding, cli.Context.CacheDB)
	case strings.HasPrefix(command, "serve"):
		deps.Service, err = m.buildService(logger, cli.Serve.Ref, cli.Serve.Encoding, cli.Serve.CacheDB)
	}
	if err != nil {
		return err
	}
	defer m.Close()
	m.Service = deps.Service

	return kongCtx.Run(deps)
}

// buildService wires the aggregation service: GitHub-backed repository
// access behind a logging decorator, an optional tokenizer, and a file or
// SQLite cache store.
func (m *Main) buildService(logger *slog.Logger, ref, encoding, cacheDB string) (repoctx.ContextService, error) {
	var ghOpts []github.Option
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ghOpts = append(ghOpts, github.WithToken(token))
	}
	client, err := github.NewClient(ghOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Token counting is best-effort: without a tokenizer, count annotations
	// and budget truncation are skipped.
	var tok repoctx.Tokenizer
	if t, err := tiktoken.New(encoding); err != nil {
		logger.Warn("tokenizer unavailable, skipping token counts", "encoding", encoding, "error", err)
	} else {
		tok = t
	}

	var cache repoctx.Cache
	if cacheDB != "" {
		m.DB = sqlite.NewDB(cacheDB)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database at %q: %w", cacheDB, err)
		}
		cache = sqlite.NewCache(m.DB)
	} else {
		cache = fs.NewCache(m.CacheDir)
	}

	return &aggregate.Service{
		Aggregator: &aggregate.Aggregator{
			Repos:     repolog.NewRepoService(client, logger),
			Tokenizer: tok,
			Ref:       ref,
			Logger:    logger,
		},
		Cache: cache,
	}, nil
}

func defaultCacheDir() string {
	if dir := os.Getenv("REPOCTX_CACHE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cache"
	}
	return filepath.Join(home, ".repoctx", "cache")
}
