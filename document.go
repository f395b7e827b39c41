package repoctx

import (
	"path"
	"strings"
)

// OnboardingBase is the base name of the whole-project overview file. The
// section derived from it is always ordered first in an aggregate.
const OnboardingBase = "on_boarding"

// Document represents a markdown documentation file fetched from a
// repository. Documents are transient: they live for the duration of one
// aggregation call and are discarded after concatenation.
type Document struct {
	Path    string
	Content string
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	return nil
}

// Component returns the document's base file name without the .md extension.
func (d *Document) Component() string {
	base := path.Base(d.Path)
	return strings.TrimSuffix(base, ".md")
}

// IsOnboarding reports whether the document is the whole-project overview.
func (d *Document) IsOnboarding() bool {
	return d.Component() == OnboardingBase
}
