package generation

import "errors"

// Sentinel errors for the generation use case.
var (
	// ErrProviderUnavailable indicates that no content provider is
	// configured. Retrying cannot help; the condition is surfaced as-is.
	ErrProviderUnavailable = errors.New("no article generation provider available")
)
