package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/repoctx"
	"github.com/fwojciec/repoctx/mock"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no arguments prints help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, nil, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"--help"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "context")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("global flag may precede the command name", func(t *testing.T) {
		t.Parallel()

		var got repoctx.ContextRequest
		m := NewMain()
		m.Service = &mock.ContextService{
			ContextWithCodeFn: func(ctx context.Context, req repoctx.ContextRequest) (string, error) {
				got = req
				return "# Aggregate", nil
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(ctx, []string{"-v", "context", "octocat/docs", "a/"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Equal(t, repoctx.Repo{Owner: "octocat", Name: "docs"}, got.DocsRepo)
		assert.Equal(t, "a/", got.SubdirPrefix)
		assert.Contains(t, stdout.String(), "# Aggregate")
	})

	t.Run("unknown command is rejected", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"bogus"}, &stdout, &stderr)
		assert.Error(t, err)
	})

	t.Run("context requires repo and prefix arguments", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(ctx, []string{"context"}, &stdout, &stderr)
		assert.Error(t, err)
	})
}
