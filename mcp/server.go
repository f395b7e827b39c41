// Package mcp exposes the aggregation operations as MCP tools served over
// stdio, so LLM clients can pull repository documentation into their context.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fwojciec/repoctx"
)

// NewServer creates an MCP server exposing the two context tools backed by
// svc.
func NewServer(svc repoctx.ContextService) *server.MCPServer {
	s := server.NewMCPServer(
		"repoctx",
		"0.1.0",
		server.WithToolCapabilities(true),
	)
	s.AddTool(contextTool(
		"get_context_with_code",
		"Load onboarding markdown content with hosted code links replaced by code blocks.",
	), contextHandler(svc.ContextWithCode))
	s.AddTool(contextTool(
		"get_context_without_code",
		"Load onboarding markdown content without replacing hosted code links.",
	), contextHandler(svc.ContextWithoutCode))
	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func contextTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("repo",
			mcp.Description("Documentation repository (owner/name)"),
			mcp.Required(),
		),
		mcp.WithString("subdir_prefix",
			mcp.Description("Path prefix of the .md files to include (e.g. MyProject/)"),
			mcp.Required(),
		),
		mcp.WithString("code_repo",
			mcp.Description("Repository holding the referenced source code; defaults to repo"),
		),
		mcp.WithNumber("token_budget",
			mcp.Description("Maximum tokens in the result; applies only when cache is false"),
		),
		mcp.WithBoolean("cache",
			mcp.Description("Serve from the on-disk cache when available"),
		),
	)
}

func contextHandler(get func(ctx context.Context, req repoctx.ContextRequest) (string, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docsRepo, err := repoctx.ParseRepo(req.GetString("repo", ""))
		if err != nil {
			return toolError(err)
		}

		creq := repoctx.ContextRequest{
			DocsRepo:     docsRepo,
			SubdirPrefix: req.GetString("subdir_prefix", ""),
			TokenBudget:  req.GetInt("token_budget", 0),
			UseCache:     req.GetBool("cache", false),
		}
		if slug := req.GetString("code_repo", ""); slug != "" {
			codeRepo, err := repoctx.ParseRepo(slug)
			if err != nil {
				return toolError(err)
			}
			creq.CodeRepo = codeRepo
		}

		content, err := get(ctx, creq)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(content), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(repoctx.ErrorMessage(err)), nil
}
