// Package fs provides a file-backed cache store for aggregates: one flat
// markdown file per composite key, no TTL, no invalidation.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/fwojciec/repoctx"
)

// maxFilenameLen bounds cache file names; most filesystems cap names at 255
// bytes. Longer keys keep a readable prefix plus a hash suffix.
const maxFilenameLen = 200

// Ensure Cache implements repoctx.Cache at compile time.
var _ repoctx.Cache = (*Cache)(nil)

// Cache stores aggregates as files under a single directory. The directory
// is created on first write. Concurrent puts for the same key are
// last-writer-wins.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Path returns the file path an entry for key is stored at.
func (c *Cache) Path(key repoctx.CacheKey) string {
	name := key.Filename()
	if len(name) > maxFilenameLen {
		sum := xxhash.Sum64String(name)
		name = fmt.Sprintf("%s-%016x.md", strings.TrimSuffix(name[:maxFilenameLen-20], "_"), sum)
	}
	return filepath.Join(c.dir, name)
}

// Get returns the cached content for key, if present.
func (c *Cache) Get(ctx context.Context, key repoctx.CacheKey) (string, bool, error) {
	data, err := os.ReadFile(c.Path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Put stores content under key, overwriting any existing entry.
func (c *Cache) Put(ctx context.Context, key repoctx.CacheKey, content string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(c.Path(key), []byte(content), 0644)
}
