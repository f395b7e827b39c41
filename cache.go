package repoctx

import (
	"context"
	"strings"
)

// CacheKey identifies one cached aggregate. Content stored under a key is
// immutable once written; there is no invalidation mechanism.
type CacheKey struct {
	DocsRepo     Repo
	SubdirPrefix string
	CodeRepo     Repo
	EmbedCode    bool
}

// Filename returns the key as a deterministic flat file name: sanitized forms
// of the key parts joined by "__" with a ".md" extension.
func (k CacheKey) Filename() string {
	sanitize := func(s string) string {
		return strings.ReplaceAll(strings.Trim(s, "/"), "/", "__")
	}
	mode := "raw"
	if k.EmbedCode {
		mode = "inline"
	}
	parts := []string{
		sanitize(k.DocsRepo.String()),
		sanitize(k.SubdirPrefix),
		sanitize(k.CodeRepo.String()),
		mode,
	}
	return strings.Join(parts, "__") + ".md"
}

// Cache stores aggregates by composite key. Implementations are simple
// key-value stores: no TTL, no content hashing, last writer wins on
// concurrent puts for the same key.
type Cache interface {
	// Get returns the cached content for key. The boolean reports whether an
	// entry exists; a missing entry is not an error.
	Get(ctx context.Context, key CacheKey) (string, bool, error)

	// Put stores content under key, overwriting any existing entry.
	Put(ctx context.Context, key CacheKey, content string) error
}
