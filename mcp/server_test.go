package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/repoctx"
	"github.com/fwojciec/repoctx/mock"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestContextHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("passes arguments through to the service", func(t *testing.T) {
		t.Parallel()

		var got repoctx.ContextRequest
		svc := &mock.ContextService{
			ContextWithCodeFn: func(ctx context.Context, req repoctx.ContextRequest) (string, error) {
				got = req
				return "# Aggregate", nil
			},
		}
		handler := contextHandler(svc.ContextWithCode)

		result, err := handler(ctx, callRequest(map[string]any{
			"repo":          "octocat/docs",
			"subdir_prefix": "a/",
			"code_repo":     "octocat/code",
			"token_budget":  5000,
			"cache":         true,
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "# Aggregate", textOf(t, result))

		assert.Equal(t, repoctx.Repo{Owner: "octocat", Name: "docs"}, got.DocsRepo)
		assert.Equal(t, "a/", got.SubdirPrefix)
		assert.Equal(t, repoctx.Repo{Owner: "octocat", Name: "code"}, got.CodeRepo)
		assert.Equal(t, 5000, got.TokenBudget)
		assert.True(t, got.UseCache)
	})

	t.Run("invalid repo produces a tool error, not a failure", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ContextService{}
		handler := contextHandler(svc.ContextWithCode)

		result, err := handler(ctx, callRequest(map[string]any{
			"repo":          "not-a-slug",
			"subdir_prefix": "a/",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("service errors surface as tool errors", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ContextService{
			ContextWithoutCodeFn: func(ctx context.Context, req repoctx.ContextRequest) (string, error) {
				return "", repoctx.Errorf(repoctx.EINVALID, "subdirectory prefix required")
			},
		}
		handler := contextHandler(svc.ContextWithoutCode)

		result, err := handler(ctx, callRequest(map[string]any{
			"repo": "octocat/docs",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textOf(t, result), "subdirectory prefix required")
	})
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	svc := &mock.ContextService{}
	assert.NotNil(t, NewServer(svc))
}
