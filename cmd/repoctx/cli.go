package main

import (
	"context"
	"io"

	"github.com/fwojciec/repoctx"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service repoctx.ContextService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Context ContextCmd `cmd:"" help:"Aggregate a repository's documentation into one markdown document"`
	Serve   ServeCmd   `cmd:"" help:"Serve the aggregation tools over MCP stdio"`
}

// ContextCmd is the "context" subcommand.
type ContextCmd struct {
	DocsRepo string `arg:"" help:"Documentation repository (owner/name)"`
	Subdir   string `arg:"" help:"Subdirectory prefix of the .md files to include"`

	Code     bool   `default:"true" negatable:"" help:"Inline referenced source snippets (--no-code leaves plain references with token counts)"`
	CodeRepo string `help:"Repository holding the referenced source code (defaults to the docs repo)"`
	Budget   int    `default:"10000" help:"Token budget for the result (uncached only)"`
	Cache    bool   `help:"Serve from the on-disk cache when available"`
	Ref      string `default:"main" help:"Ref to read both repositories at"`
	Encoding string `default:"cl100k_base" help:"Tokenizer encoding for counts and truncation"`
	CacheDB  string `help:"Use a SQLite cache at this path instead of the cache directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Ref      string `default:"main" help:"Ref to read repositories at"`
	Encoding string `default:"cl100k_base" help:"Tokenizer encoding for counts and truncation"`
	CacheDB  string `help:"Use a SQLite cache at this path instead of the cache directory"`
}
