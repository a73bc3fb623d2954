package translator

import (
	"context"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/usecase/translation"
)

// NoOp is a translator that returns the base text unchanged.
// This is useful for local development when no API keys are configured.
type NoOp struct{}

// NewNoOp creates a new NoOp translator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Name identifies the provider in logs and metrics.
func (n *NoOp) Name() string { return "noop" }

// Available always reports true.
func (n *NoOp) Available() bool { return true }

// SupportsLanguage reports true for every supported language.
func (n *NoOp) SupportsLanguage(lang entity.Language) bool {
	return entity.IsSupportedLanguage(string(lang))
}

// Translate returns the base title and content unchanged.
func (n *NoOp) Translate(_ context.Context, base *entity.Article, _ entity.Language) (*translation.Result, error) {
	return &translation.Result{Title: base.Title, Content: base.Content}, nil
}
