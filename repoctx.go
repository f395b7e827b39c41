// Package repoctx aggregates markdown documentation spread across a hosted
// repository into a single LLM-consumable document. It fetches markdown files
// under a subdirectory prefix, rewrites diagram blocks and source-code
// references into plain text, optionally inlines the referenced snippets, and
// enforces a token budget on the combined output.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., github/, tiktoken/, sqlite/).
package repoctx
