package repoctx

import (
	"context"
	"strings"
)

// Repo identifies a hosted repository by owner and name.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ParseRepo parses an "owner/name" slug into a Repo.
func ParseRepo(slug string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.Trim(slug, "/"), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, Errorf(EINVALID, "invalid repository %q, expected owner/name", slug)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// String returns the "owner/name" slug.
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether the repo is unset.
func (r Repo) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// Validate returns an error if the repo is incomplete.
func (r Repo) Validate() error {
	if r.Owner == "" || r.Name == "" {
		return Errorf(EINVALID, "repository owner and name required")
	}
	return nil
}

// TreeEntry is a single entry in a repository file tree listing.
type TreeEntry struct {
	Path   string
	IsFile bool
}

// RepoService provides read access to a hosted repository: a recursive file
// tree listing and raw file content by path. Any provider exposing equivalent
// "list files under ref" and "fetch raw blob" operations can implement it.
type RepoService interface {
	// ListTree returns the full recursive file tree of the repository at ref.
	ListTree(ctx context.Context, repo Repo, ref string) ([]TreeEntry, error)

	// FetchRaw returns the raw content of a single file at ref.
	// Returns ENOTFOUND if the path does not exist at ref.
	FetchRaw(ctx context.Context, repo Repo, ref, path string) (string, error)
}
