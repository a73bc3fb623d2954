package generator

import (
	"context"
	"fmt"

	"daily-wisdom/internal/usecase/generation"
)

// NoOp is a content provider that returns a fixed placeholder article.
// This is useful for local development when no API key is configured.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Available always reports true.
func (n *NoOp) Available() bool {
	return true
}

// Generate returns a deterministic placeholder article for the date.
func (n *NoOp) Generate(_ context.Context, date string) (*generation.RawResponse, error) {
	text := fmt.Sprintf("# Daily Wisdom for %s\n\nPlaceholder article content. Configure an API key to generate real articles.", date)
	return &generation.RawResponse{Text: text}, nil
}
