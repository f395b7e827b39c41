package mock

import (
	"context"

	"github.com/fwojciec/repoctx"
)

var _ repoctx.Cache = (*Cache)(nil)

// Cache is a mock implementation of repoctx.Cache.
type Cache struct {
	GetFn func(ctx context.Context, key repoctx.CacheKey) (string, bool, error)
	PutFn func(ctx context.Context, key repoctx.CacheKey, content string) error
}

func (c *Cache) Get(ctx context.Context, key repoctx.CacheKey) (string, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Put(ctx context.Context, key repoctx.CacheKey, content string) error {
	return c.PutFn(ctx, key, content)
}
