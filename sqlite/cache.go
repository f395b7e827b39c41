package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fwojciec/repoctx"
)

// Ensure Cache implements repoctx.Cache at compile time.
var _ repoctx.Cache = (*Cache)(nil)

// Cache stores aggregates in a SQLite table keyed by the composite cache key.
// Entries are immutable in practice: the aggregation service never puts over
// an existing key, but a concurrent put is last-writer-wins like the file
// store.
type Cache struct {
	db *DB
}

// NewCache creates a Cache backed by db.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get returns the cached content for key, if present.
func (c *Cache) Get(ctx context.Context, key repoctx.CacheKey) (string, bool, error) {
	var content string
	err := c.db.db.QueryRowContext(ctx,
		`SELECT content FROM aggregates WHERE key = ?`, key.Filename(),
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return content, true, nil
}

// Put stores content under key, overwriting any existing entry.
func (c *Cache) Put(ctx context.Context, key repoctx.CacheKey, content string) error {
	_, err := c.db.db.ExecContext(ctx,
		`INSERT INTO aggregates (key, content) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET content = excluded.content`,
		key.Filename(), content,
	)
	return err
}
