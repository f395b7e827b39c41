package aggregate

import (
	"context"

	"github.com/fwojciec/repoctx"
)

// DefaultTokenBudget caps uncached aggregates when the request does not name
// a budget.
const DefaultTokenBudget = 10000

// Ensure Service implements repoctx.ContextService at compile time.
var _ repoctx.ContextService = (*Service)(nil)

// Service exposes the two public aggregation operations, optionally routed
// through a cache. A cache hit returns the stored content unconditionally; a
// miss aggregates and persists the result verbatim. The token budget applies
// only to the uncached path.
type Service struct {
	Aggregator    *Aggregator
	Cache         repoctx.Cache // nil disables the cached path
	DefaultBudget int           // defaults to DefaultTokenBudget
}

// ContextWithCode aggregates documentation with referenced source snippets
// inlined as fenced code blocks.
func (s *Service) ContextWithCode(ctx context.Context, req repoctx.ContextRequest) (string, error) {
	return s.aggregate(ctx, req, true)
}

// ContextWithoutCode aggregates documentation leaving references as
// plain-text pointers annotated with token counts.
func (s *Service) ContextWithoutCode(ctx context.Context, req repoctx.ContextRequest) (string, error) {
	return s.aggregate(ctx, req, false)
}

func (s *Service) aggregate(ctx context.Context, req repoctx.ContextRequest, embed bool) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	codeRepo := req.CodeRepo
	if codeRepo.IsZero() {
		codeRepo = req.DocsRepo
	}

	areq := Request{
		DocsRepo:     req.DocsRepo,
		SubdirPrefix: req.SubdirPrefix,
		EmbedCode:    embed,
		CodeRepo:     codeRepo,
	}

	if req.UseCache && s.Cache != nil {
		key := repoctx.CacheKey{
			DocsRepo:     req.DocsRepo,
			SubdirPrefix: req.SubdirPrefix,
			CodeRepo:     codeRepo,
			EmbedCode:    embed,
		}
		if content, ok, err := s.Cache.Get(ctx, key); err != nil {
			s.Aggregator.logger().Warn("cache read failed", "key", key.Filename(), "error", err)
		} else if ok {
			return content, nil
		}

		content, err := s.Aggregator.Aggregate(ctx, areq)
		if err != nil {
			return "", err
		}
		if err := s.Cache.Put(ctx, key, content); err != nil {
			s.Aggregator.logger().Warn("cache write failed", "key", key.Filename(), "error", err)
		}
		return content, nil
	}

	areq.TokenBudget = req.TokenBudget
	if areq.TokenBudget <= 0 {
		areq.TokenBudget = s.DefaultBudget
	}
	if areq.TokenBudget <= 0 {
		areq.TokenBudget = DefaultTokenBudget
	}
	return s.Aggregator.Aggregate(ctx, areq)
}
