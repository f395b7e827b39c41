// Package aggregate orchestrates documentation aggregation. It coordinates
// tree listing, per-file fetching, diagram and reference-link rewriting,
// concatenation, token annotation, and budget truncation.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/repoctx"
)

// DefaultRef is the ref used when the Aggregator has none configured.
const DefaultRef = "main"

var (
	faqSectionPattern = regexp.MustCompile(`(?s)### \[FAQ\].*`)
	badgeChainPattern = regexp.MustCompile(`(\[!\[[^\]]+\]\([^)]+\)\]\([^)]+\)\s*)+`)
)

// Aggregator builds a single markdown document from the markdown files of a
// documentation repository. Network and parse failures degrade to placeholder
// sections or omitted annotations; only invalid input and context
// cancellation surface as errors.
type Aggregator struct {
	Repos     repoctx.RepoService
	Tokenizer repoctx.Tokenizer // nil disables counting and truncation
	Ref       string            // defaults to DefaultRef
	Logger    *slog.Logger
}

// Request holds the parameters for one aggregation.
type Request struct {
	DocsRepo     repoctx.Repo
	SubdirPrefix string
	EmbedCode    bool
	TokenBudget  int // 0 disables truncation
	CodeRepo     repoctx.Repo
}

// Aggregate lists the markdown files of DocsRepo under SubdirPrefix, fetches
// and transforms each one sequentially, and returns the concatenated result.
// The section derived from the on_boarding file is always ordered first.
func (a *Aggregator) Aggregate(ctx context.Context, req Request) (string, error) {
	if err := req.DocsRepo.Validate(); err != nil {
		return "", err
	}
	if req.SubdirPrefix == "" {
		return "", repoctx.Errorf(repoctx.EINVALID, "subdirectory prefix required")
	}

	codeRepo := req.CodeRepo
	if codeRepo.IsZero() {
		codeRepo = req.DocsRepo
	}
	ref := a.Ref
	if ref == "" {
		ref = DefaultRef
	}

	paths, err := a.listMarkdownFiles(ctx, req.DocsRepo, ref, req.SubdirPrefix)
	if err != nil {
		return "", err
	}
	a.logger().Info("aggregating documentation",
		"repo", req.DocsRepo.String(),
		"prefix", req.SubdirPrefix,
		"files", len(paths),
	)

	parts := []string{a.documentHeader(req.SubdirPrefix)}
	for _, p := range paths {
		content, err := a.Repos.FetchRaw(ctx, req.DocsRepo, ref, p)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			a.logger().Warn("document fetch failed", "path", p, "error", err)
			parts = append(parts, fmt.Sprintf("# %s (Failed fetch)", p))
			continue
		}
		doc := repoctx.Document{Path: p, Content: content}
		parts = append(parts, a.formatSection(ctx, &doc, req.EmbedCode))
	}

	combined := strings.Join(parts, "\n\n")
	combined = faqSectionPattern.ReplaceAllString(combined, "")
	combined = badgeChainPattern.ReplaceAllString(combined, "")

	if !req.EmbedCode {
		combined = a.annotateReferences(ctx, combined, codeRepo, ref)
	}
	combined = a.truncate(ctx, combined, req.TokenBudget)

	return strings.TrimSpace(combined), nil
}

// listMarkdownFiles returns the repository's markdown files under prefix,
// with any on_boarding file moved to the front. A failed tree listing
// degrades to an empty list.
func (a *Aggregator) listMarkdownFiles(ctx context.Context, repo repoctx.Repo, ref, prefix string) ([]string, error) {
	entries, err := a.Repos.ListTree(ctx, repo, ref)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger().Warn("tree listing failed", "repo", repo.String(), "error", err)
		return nil, nil
	}

	var paths []string
	for _, e := range entries {
		if e.IsFile && strings.HasSuffix(e.Path, ".md") && strings.HasPrefix(e.Path, prefix) {
			paths = append(paths, e.Path)
		}
	}
	for i, p := range paths {
		if strings.Contains(p, repoctx.OnboardingBase+".md") {
			paths = append([]string{p}, append(paths[:i:i], paths[i+1:]...)...)
			break
		}
	}
	return paths, nil
}

// formatSection prepends the section header and applies the diagram and
// reference-link transforms to a single document.
func (a *Aggregator) formatSection(ctx context.Context, doc *repoctx.Document, embed bool) string {
	content := doc.Content
	if embed {
		content = repoctx.SummarizeMermaidBlocks(content)
	}

	header := fmt.Sprintf("## System Architecture Overview of Component: %s", doc.Component())
	if doc.IsOnboarding() {
		header = "## System Architecture of the Whole Project:"
	}

	var resolve repoctx.ReferenceResolver
	if embed {
		resolve = a.snippetResolver(ctx)
	}
	return header + "\n\n" + repoctx.ConvertReferenceLinks(content, resolve)
}

// snippetResolver returns a resolver that fetches referenced source snippets
// from the repository named inside each reference link.
func (a *Aggregator) snippetResolver(ctx context.Context) repoctx.ReferenceResolver {
	return func(ref repoctx.Reference) (string, int, bool) {
		content, err := a.Repos.FetchRaw(ctx, ref.Repo, ref.Ref, ref.Path)
		if err != nil {
			a.logger().Warn("snippet fetch failed", "path", ref.Path, "error", err)
			return "", 0, false
		}
		snippet := repoctx.ExtractSnippet(content, ref.StartLine, ref.EndLine)
		if snippet == "" {
			return "", 0, false
		}
		tokens := -1
		if a.Tokenizer != nil {
			tokens = repoctx.CountTokens(ctx, a.Tokenizer, snippet)
		}
		return snippet, tokens, true
	}
}

// annotateReferences appends token counts to plain-text reference bullets by
// re-fetching each referenced snippet from the code repository. Fetch and
// tokenization failures count as zero.
func (a *Aggregator) annotateReferences(ctx context.Context, combined string, codeRepo repoctx.Repo, ref string) string {
	if a.Tokenizer == nil {
		return combined
	}
	return repoctx.AnnotatePlainReferences(combined, func(r repoctx.Reference) int {
		content, err := a.Repos.FetchRaw(ctx, codeRepo, ref, r.Path)
		if err != nil {
			return 0
		}
		snippet := repoctx.ExtractSnippet(content, r.StartLine, r.EndLine)
		return repoctx.CountTokens(ctx, a.Tokenizer, snippet)
	})
}

// truncate cuts text to exactly budget tokens. Truncation happens at token
// boundaries and may leave a syntactically incomplete trailing line.
func (a *Aggregator) truncate(ctx context.Context, text string, budget int) string {
	if a.Tokenizer == nil || budget <= 0 {
		return text
	}
	tokens, err := a.Tokenizer.Encode(ctx, text)
	if err != nil || len(tokens) <= budget {
		return text
	}
	decoded, err := a.Tokenizer.Decode(ctx, tokens[:budget])
	if err != nil {
		return text
	}
	return decoded
}

// documentHeader names the subdirectory as the project in the whole-document
// header.
func (a *Aggregator) documentHeader(prefix string) string {
	name := path.Base(strings.TrimRight(prefix, "/"))
	return fmt.Sprintf("# %s Architecture Overview", name)
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
