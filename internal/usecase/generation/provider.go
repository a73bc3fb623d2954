// Package generation turns a raw content provider response into a persisted
// base-language article. The orchestrator is cache-first and performs no retry
// of its own; providers wrap their network calls in the retry package.
package generation

import "context"

// Citation is a reference discovered by the provider while generating content.
// Title may be empty; URI identifies the citation.
type Citation struct {
	Title string
	URI   string
}

// RawResponse is the unprocessed output of a content provider.
type RawResponse struct {
	// Text is the generated article body, expected to be Markdown with an
	// H1 title. May be empty on a degenerate provider response.
	Text string

	// Citations are the grounding references, possibly with duplicates.
	Citations []Citation
}

// Provider is an opaque capability that produces raw article content for a date.
// Implementations are swappable; the orchestrator selects by availability.
type Provider interface {
	// Available reports whether the provider is configured and usable.
	Available() bool

	// Generate produces raw content for the given "YYYY-MM-DD" date.
	// Transient failures are retried inside the implementation.
	Generate(ctx context.Context, date string) (*RawResponse, error)
}
