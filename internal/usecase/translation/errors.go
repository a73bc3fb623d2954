package translation

import (
	"errors"
	"fmt"
)

// ErrNoProvider indicates that no provider in the chain is both available and
// able to translate into the requested language.
var ErrNoProvider = errors.New("no translation provider available for language")

// InsufficientQuotaError is returned by a metered provider when the article
// would not fit in the remaining character budget. The chain treats it like
// any other provider failure and falls through to the next provider.
type InsufficientQuotaError struct {
	Needed    int64
	Remaining int64
}

func (e *InsufficientQuotaError) Error() string {
	return fmt.Sprintf("insufficient translation quota: need %d characters, %d remaining", e.Needed, e.Remaining)
}
