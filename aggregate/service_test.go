package aggregate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/repoctx"
	"github.com/fwojciec/repoctx/aggregate"
	"github.com/fwojciec/repoctx/fs"
	"github.com/fwojciec/repoctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Cache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("second cached call performs no aggregation and is byte-identical", func(t *testing.T) {
		t.Parallel()

		var listCalls int
		repos := &mock.RepoService{
			ListTreeFn: func(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error) {
				listCalls++
				return []repoctx.TreeEntry{{Path: "a/x.md", IsFile: true}}, nil
			},
			FetchRawFn: func(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error) {
				return "component docs", nil
			},
		}
		dir := t.TempDir()
		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repos, Logger: discard},
			Cache:      fs.NewCache(dir),
		}

		req := repoctx.ContextRequest{DocsRepo: docsRepo(), SubdirPrefix: "a/", UseCache: true}

		first, err := svc.ContextWithoutCode(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, listCalls)

		second, err := svc.ContextWithoutCode(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, listCalls)
		assert.Equal(t, first, second)

		key := repoctx.CacheKey{DocsRepo: docsRepo(), SubdirPrefix: "a/", CodeRepo: docsRepo()}
		data, err := os.ReadFile(filepath.Join(dir, key.Filename()))
		require.NoError(t, err)
		assert.Equal(t, second, string(data))
	})

	t.Run("embed modes cache under distinct keys", func(t *testing.T) {
		t.Parallel()

		var puts []repoctx.CacheKey
		cache := &mock.Cache{
			GetFn: func(ctx context.Context, key repoctx.CacheKey) (string, bool, error) {
				return "", false, nil
			},
			PutFn: func(ctx context.Context, key repoctx.CacheKey, content string) error {
				puts = append(puts, key)
				return nil
			},
		}
		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repoWith(nil, nil), Logger: discard},
			Cache:      cache,
		}

		req := repoctx.ContextRequest{DocsRepo: docsRepo(), SubdirPrefix: "a/", UseCache: true}
		_, err := svc.ContextWithCode(ctx, req)
		require.NoError(t, err)
		_, err = svc.ContextWithoutCode(ctx, req)
		require.NoError(t, err)

		require.Len(t, puts, 2)
		assert.True(t, puts[0].EmbedCode)
		assert.False(t, puts[1].EmbedCode)
		assert.NotEqual(t, puts[0].Filename(), puts[1].Filename())
	})

	t.Run("cached path ignores the token budget", func(t *testing.T) {
		t.Parallel()

		repos := repoWith(
			[]repoctx.TreeEntry{{Path: "a/x.md", IsFile: true}},
			map[string]string{"a/x.md": "a long enough document body"},
		)
		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repos, Tokenizer: runeTokenizer(), Logger: discard},
			Cache:      fs.NewCache(t.TempDir()),
		}

		got, err := svc.ContextWithoutCode(ctx, repoctx.ContextRequest{
			DocsRepo:     docsRepo(),
			SubdirPrefix: "a/",
			TokenBudget:  5,
			UseCache:     true,
		})
		require.NoError(t, err)
		assert.Contains(t, got, "a long enough document body")
	})

	t.Run("cache read failure degrades to aggregation", func(t *testing.T) {
		t.Parallel()

		cache := &mock.Cache{
			GetFn: func(ctx context.Context, key repoctx.CacheKey) (string, bool, error) {
				return "", false, os.ErrPermission
			},
			PutFn: func(ctx context.Context, key repoctx.CacheKey, content string) error {
				return os.ErrPermission
			},
		}
		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repoWith(nil, nil), Logger: discard},
			Cache:      cache,
		}

		got, err := svc.ContextWithoutCode(ctx, repoctx.ContextRequest{
			DocsRepo:     docsRepo(),
			SubdirPrefix: "a/",
			UseCache:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, "# a Architecture Overview", got)
	})
}

func TestService_Uncached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies the service default budget", func(t *testing.T) {
		t.Parallel()

		repos := repoWith(
			[]repoctx.TreeEntry{{Path: "a/x.md", IsFile: true}},
			map[string]string{"a/x.md": "a long enough document body"},
		)
		tok := runeTokenizer()
		svc := &aggregate.Service{
			Aggregator:    &aggregate.Aggregator{Repos: repos, Tokenizer: tok, Logger: discard},
			DefaultBudget: 10,
		}

		got, err := svc.ContextWithoutCode(ctx, repoctx.ContextRequest{
			DocsRepo:     docsRepo(),
			SubdirPrefix: "a/",
		})
		require.NoError(t, err)

		reencoded, err := tok.Encode(ctx, got)
		require.NoError(t, err)
		assert.Len(t, reencoded, 10)
	})

	t.Run("code repo defaults to the docs repo", func(t *testing.T) {
		t.Parallel()

		var snippetRepo repoctx.Repo
		repos := &mock.RepoService{
			ListTreeFn: func(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error) {
				return []repoctx.TreeEntry{{Path: "a/x.md", IsFile: true}}, nil
			},
			FetchRawFn: func(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error) {
				if path == "a/x.md" {
					return "- foo (pkg/mod.py: lines 1–2)", nil
				}
				snippetRepo = repo
				return "abc", nil
			},
		}
		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repos, Tokenizer: runeTokenizer(), Logger: discard},
		}

		_, err := svc.ContextWithoutCode(ctx, repoctx.ContextRequest{
			DocsRepo:     docsRepo(),
			SubdirPrefix: "a/",
		})
		require.NoError(t, err)
		assert.Equal(t, docsRepo(), snippetRepo)
	})

	t.Run("rejects an invalid request", func(t *testing.T) {
		t.Parallel()

		svc := &aggregate.Service{
			Aggregator: &aggregate.Aggregator{Repos: repoWith(nil, nil), Logger: discard},
		}

		_, err := svc.ContextWithCode(ctx, repoctx.ContextRequest{SubdirPrefix: "a/"})
		assert.Equal(t, repoctx.EINVALID, repoctx.ErrorCode(err))

		_, err = svc.ContextWithCode(ctx, repoctx.ContextRequest{DocsRepo: docsRepo()})
		assert.Equal(t, repoctx.EINVALID, repoctx.ErrorCode(err))
	})
}
