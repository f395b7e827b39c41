package repoctx

import "context"

// ContextRequest describes one aggregation request. CodeRepo defaults to
// DocsRepo when unset; TokenBudget applies only to the uncached path and
// falls back to the service default when zero.
type ContextRequest struct {
	DocsRepo     Repo   `json:"docsRepo"`
	SubdirPrefix string `json:"subdirPrefix"`
	CodeRepo     Repo   `json:"codeRepo"`
	TokenBudget  int    `json:"tokenBudget"`
	UseCache     bool   `json:"useCache"`
}

// Validate returns an error if the request is incomplete.
func (r *ContextRequest) Validate() error {
	if err := r.DocsRepo.Validate(); err != nil {
		return err
	}
	if r.SubdirPrefix == "" {
		return Errorf(EINVALID, "subdirectory prefix required")
	}
	return nil
}

// ContextService exposes the two public aggregation operations. They differ
// only in whether referenced source snippets are fetched and inlined. Both
// return a best-effort markdown string: transport and parse failures degrade
// to placeholder sections or omitted annotations rather than errors.
type ContextService interface {
	// ContextWithCode aggregates documentation with referenced source
	// snippets inlined as fenced code blocks.
	ContextWithCode(ctx context.Context, req ContextRequest) (string, error)

	// ContextWithoutCode aggregates documentation leaving references as
	// plain-text pointers annotated with token counts.
	ContextWithoutCode(ctx context.Context, req ContextRequest) (string, error)
}
