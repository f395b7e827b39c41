package repoctx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reference is a textual pointer to a line range in a specific file of a
// specific repository and ref. References are derived transiently from link
// patterns inside a document and are never stored independently.
type Reference struct {
	Repo      Repo
	Ref       string
	Path      string
	StartLine int
	EndLine   int
	Symbol    string
}

// blobURLPattern matches hosted blob URLs with a line range fragment,
// e.g. https://github.com/owner/repo/blob/main/pkg/mod.py#L10-L20.
var blobURLPattern = regexp.MustCompile(
	`https://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/([^#\s"]+)#L(\d+)-L(\d+)`)

// htmlRefLinkPattern matches HTML anchors wrapping a code symbol with a line
// range, the shape generated-documentation tools emit for source references:
// <a href="https://github.com/o/r/blob/main/p.py#L10-L20">`sym` (10:20)</a>.
var htmlRefLinkPattern = regexp.MustCompile(
	`<a href="https://github\.com/([^/]+)/([^/]+)/blob/([^/]+)/([^#"]+)#L(\d+)-L(\d+)"[^>]*>` +
		"`([^`]+)` " + `\(\d+:\d+\)</a>`)

// plainRefPattern matches the plain-text reference bullets produced by
// ConvertReferenceLinks, e.g. "- foo (pkg/mod.py: lines 10–20)". Both the en
// dash and a plain hyphen are accepted between line numbers, and the path may
// itself contain parentheses.
var plainRefPattern = regexp.MustCompile(
	`-\s*([A-Za-z0-9_.]+)\s*\(\s*([^:]+):\s*lines\s*(\d+)[–-](\d+)\s*\)`)

// ParseBlobURL parses a hosted blob URL with a line range into a Reference.
// The returned reference has an empty Symbol.
func ParseBlobURL(rawURL string) (Reference, error) {
	m := blobURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return Reference{}, Errorf(EINVALID, "not a blob URL with line range: %q", rawURL)
	}
	start, _ := strconv.Atoi(m[5])
	end, _ := strconv.Atoi(m[6])
	return Reference{
		Repo:      Repo{Owner: m[1], Name: m[2]},
		Ref:       m[3],
		Path:      m[4],
		StartLine: start,
		EndLine:   end,
	}, nil
}

// PlainText renders the reference as a plain-text line: "sym (path: lines S–E)".
func (r Reference) PlainText() string {
	return fmt.Sprintf("%s (%s: lines %d–%d)", r.Symbol, r.Path, r.StartLine, r.EndLine)
}

// ExtractSnippet returns lines start..end (1-based, inclusive) of content.
// Out-of-range bounds are clamped; an empty selection returns "".
func ExtractSnippet(content string, start, end int) string {
	lines := strings.Split(content, "\n")
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

// ReferenceResolver resolves a reference to its source snippet for inlining.
// The returned token count annotates the snippet; a negative count means no
// token-counting facility is available and the annotation is omitted. ok
// reports whether the snippet could be fetched at all.
type ReferenceResolver func(ref Reference) (snippet string, tokens int, ok bool)

// ConvertReferenceLinks rewrites HTML reference anchors as plain-text
// reference lines. When resolve is non-nil, each reference is additionally
// expanded with a fenced snippet of the referenced source; a failed
// resolution silently degrades to the plain-text line alone.
func ConvertReferenceLinks(markdown string, resolve ReferenceResolver) string {
	return htmlRefLinkPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		m := htmlRefLinkPattern.FindStringSubmatch(match)
		start, _ := strconv.Atoi(m[5])
		end, _ := strconv.Atoi(m[6])
		ref := Reference{
			Repo:      Repo{Owner: m[1], Name: m[2]},
			Ref:       m[3],
			Path:      m[4],
			StartLine: start,
			EndLine:   end,
			Symbol:    m[7],
		}

		plain := ref.PlainText()
		if resolve == nil {
			return plain
		}

		snippet, tokens, ok := resolve(ref)
		if !ok || snippet == "" {
			return plain
		}

		var b strings.Builder
		b.WriteString(plain)
		b.WriteString("\n\n```\n")
		b.WriteString(snippet)
		b.WriteString("\n```")
		if tokens >= 0 {
			fmt.Fprintf(&b, "\n[%d tokens]", tokens)
		}
		return b.String()
	})
}

// AnnotatePlainReferences appends a token count annotation to each plain-text
// reference bullet in markdown. The count function receives the parsed
// reference (repo and ref left empty, to be filled by the caller's closure)
// and returns the token count of the referenced snippet; failures are
// reported as zero by convention.
func AnnotatePlainReferences(markdown string, count func(ref Reference) int) string {
	if count == nil {
		return markdown
	}
	return plainRefPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		m := plainRefPattern.FindStringSubmatch(match)
		start, _ := strconv.Atoi(m[3])
		end, _ := strconv.Atoi(m[4])
		ref := Reference{
			Path:      strings.TrimSpace(m[2]),
			StartLine: start,
			EndLine:   end,
			Symbol:    m[1],
		}
		return fmt.Sprintf("%s [%d tokens]", match, count(ref))
	})
}
