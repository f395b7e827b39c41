package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/repoctx"
	"github.com/fwojciec/repoctx/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB opens an in-memory database and registers cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testKey() repoctx.CacheKey {
	return repoctx.CacheKey{
		DocsRepo:     repoctx.Repo{Owner: "octocat", Name: "docs"},
		SubdirPrefix: "a/",
		CodeRepo:     repoctx.Repo{Owner: "octocat", Name: "code"},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get on a missing entry reports absence without error", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewCache(mustOpenDB(t))

		content, ok, err := cache.Get(ctx, testKey())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, content)
	})

	t.Run("put then get round-trips verbatim", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewCache(mustOpenDB(t))
		key := testKey()

		require.NoError(t, cache.Put(ctx, key, "# Aggregate\n\ncontent"))

		content, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "# Aggregate\n\ncontent", content)
	})

	t.Run("put overwrites an existing entry", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewCache(mustOpenDB(t))
		key := testKey()

		require.NoError(t, cache.Put(ctx, key, "first"))
		require.NoError(t, cache.Put(ctx, key, "second"))

		content, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", content)
	})

	t.Run("embed modes store separate entries", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewCache(mustOpenDB(t))
		raw := testKey()
		inline := testKey()
		inline.EmbedCode = true

		require.NoError(t, cache.Put(ctx, raw, "raw content"))
		require.NoError(t, cache.Put(ctx, inline, "inline content"))

		content, ok, err := cache.Get(ctx, raw)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "raw content", content)
	})
}
