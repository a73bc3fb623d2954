// Package translation derives per-language articles from the base-language
// original through an ordered provider chain. The first eligible provider is
// tried and any failure falls through to the next one, so a degraded primary
// never blocks a language another provider can serve.
package translation

import (
	"context"

	"daily-wisdom/internal/domain/entity"
)

// Result is the translated text produced by a provider. Title and Content are
// both in the target language; sources are never translated and stay with the
// base article.
type Result struct {
	Title   string
	Content string
}

// Provider translates article text into a target language.
// Eligibility is per language: a provider may be available overall yet not
// support a particular target.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Available reports whether the provider is configured and usable.
	Available() bool

	// SupportsLanguage reports whether the provider can translate into lang.
	SupportsLanguage(lang entity.Language) bool

	// Translate renders the base article's title and content in target.
	// Transient failures are retried inside the implementation.
	Translate(ctx context.Context, base *entity.Article, target entity.Language) (*Result, error)
}

// QuotaInfo is a snapshot of a provider's character quota.
type QuotaInfo struct {
	CharacterCount int64
	CharacterLimit int64
}

// Remaining returns the characters left before the quota is exhausted.
func (q QuotaInfo) Remaining() int64 {
	return q.CharacterLimit - q.CharacterCount
}

// PercentageUsed returns quota consumption in percent, 0 when the limit is zero.
func (q QuotaInfo) PercentageUsed() float64 {
	if q.CharacterLimit == 0 {
		return 0
	}
	return float64(q.CharacterCount) / float64(q.CharacterLimit) * 100
}

// QuotaChecker is implemented by providers with a metered character budget.
// CheckQuota serves a cached snapshot unless forceRefresh is set or the cache
// has expired.
type QuotaChecker interface {
	CheckQuota(ctx context.Context, forceRefresh bool) (QuotaInfo, error)
}
