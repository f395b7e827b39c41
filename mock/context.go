package mock

import (
	"context"

	"github.com/fwojciec/repoctx"
)

var _ repoctx.ContextService = (*ContextService)(nil)

// ContextService is a mock implementation of repoctx.ContextService.
type ContextService struct {
	ContextWithCodeFn    func(ctx context.Context, req repoctx.ContextRequest) (string, error)
	ContextWithoutCodeFn func(ctx context.Context, req repoctx.ContextRequest) (string, error)
}

func (s *ContextService) ContextWithCode(ctx context.Context, req repoctx.ContextRequest) (string, error) {
	return s.ContextWithCodeFn(ctx, req)
}

func (s *ContextService) ContextWithoutCode(ctx context.Context, req repoctx.ContextRequest) (string, error) {
	return s.ContextWithoutCodeFn(ctx, req)
}
