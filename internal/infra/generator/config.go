package generator

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// Config holds configuration parameters for the Claude article generator.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the Claude API model identifier used for generation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	// Loaded from GENERATOR_MAX_TOKENS. Valid range: 256-16384. Default: 4096.
	MaxTokens int

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// LoadConfig loads generator configuration from environment variables.
// Invalid values fall back to the default with a warning log.
//
// Environment variables:
//   - GENERATOR_MODEL: Claude model identifier (default: claude-sonnet-4-5)
//   - GENERATOR_MAX_TOKENS: response token cap (default: 4096, range: 256-16384)
func LoadConfig() Config {
	const (
		defaultMaxTokens = 4096
		minMaxTokens     = 256
		maxMaxTokens     = 16384
	)

	maxTokens := defaultMaxTokens
	if envTokens := os.Getenv("GENERATOR_MAX_TOKENS"); envTokens != "" {
		parsed, err := strconv.Atoi(envTokens)
		if err != nil {
			slog.Warn("Invalid GENERATOR_MAX_TOKENS format, using default",
				slog.String("value", envTokens),
				slog.Int("default", defaultMaxTokens),
				slog.String("error", err.Error()))
		} else if parsed < minMaxTokens || parsed > maxMaxTokens {
			slog.Warn("GENERATOR_MAX_TOKENS out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("min", minMaxTokens),
				slog.Int("max", maxMaxTokens),
				slog.Int("default", defaultMaxTokens))
		} else {
			maxTokens = parsed
		}
	}

	model := os.Getenv("GENERATOR_MODEL")
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	return Config{
		Model:     model,
		MaxTokens: maxTokens,
		Timeout:   120 * time.Second,
	}
}
