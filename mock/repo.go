package mock

import (
	"context"

	"github.com/fwojciec/repoctx"
)

var _ repoctx.RepoService = (*RepoService)(nil)

// RepoService is a mock implementation of repoctx.RepoService.
type RepoService struct {
	ListTreeFn func(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error)
	FetchRawFn func(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error)
}

func (s *RepoService) ListTree(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error) {
	return s.ListTreeFn(ctx, repo, ref)
}

func (s *RepoService) FetchRaw(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error) {
	return s.FetchRawFn(ctx, repo, ref, path)
}
