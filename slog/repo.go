// Package slog provides logging decorators for repoctx services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repoctx"
)

// Ensure RepoService implements repoctx.RepoService.
var _ repoctx.RepoService = (*RepoService)(nil)

// RepoService wraps a repoctx.RepoService with request logging.
type RepoService struct {
	next   repoctx.RepoService
	logger *slog.Logger
}

// NewRepoService creates a new logging RepoService.
func NewRepoService(next repoctx.RepoService, logger *slog.Logger) *RepoService {
	return &RepoService{next: next, logger: logger}
}

// ListTree delegates to the wrapped service and logs the outcome.
func (s *RepoService) ListTree(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error) {
	begin := time.Now()
	entries, err := s.next.ListTree(ctx, repo, ref)
	if err != nil {
		s.logger.Warn("tree listing failed",
			"repo", repo.String(),
			"ref", ref,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("tree listing",
		"repo", repo.String(),
		"ref", ref,
		"entries", len(entries),
		"duration", time.Since(begin),
	)
	return entries, nil
}

// FetchRaw delegates to the wrapped service and logs the outcome.
func (s *RepoService) FetchRaw(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error) {
	begin := time.Now()
	content, err := s.next.FetchRaw(ctx, repo, ref, path)
	if err != nil {
		s.logger.Warn("raw fetch failed",
			"repo", repo.String(),
			"path", path,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	s.logger.Debug("raw fetch",
		"repo", repo.String(),
		"path", path,
		"bytes", len(content),
		"duration", time.Since(begin),
	)
	return content, nil
}
