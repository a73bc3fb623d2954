// Package generator provides content provider implementations for daily
// article generation. It includes a Claude (Anthropic) adapter with circuit
// breaker and retry logic, and a NoOp provider for development.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"daily-wisdom/internal/resilience/circuitbreaker"
	"daily-wisdom/internal/resilience/retry"
	"daily-wisdom/internal/usecase/generation"
)

// sourcesHeading separates the article body from its reference list in the
// model output. The prompt instructs the model to emit it verbatim.
const sourcesHeading = "## Sources"

// sourceLinkRe matches one "- [Title](URL)" list item in the sources section.
var sourceLinkRe = regexp.MustCompile(`(?m)^[-*]\s+\[([^\]]*)\]\(([^)\s]+)\)`)

// Claude implements generation.Provider using Anthropic's Claude API.
// It includes circuit breaker and retry logic for improved reliability.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
	configured     bool
}

// NewClaude creates a new Claude article generator with the given API key.
// An empty API key yields a provider that reports itself unavailable.
func NewClaude(apiKey string) *Claude {
	config := LoadConfig()

	slog.Info("Initialized Claude article generator",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens),
		slog.Bool("configured", apiKey != ""))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.GenerationAPIConfig()),
		retryConfig:    retry.ProviderCallConfig(),
		config:         config,
		configured:     apiKey != "",
	}
}

// Available reports whether the provider holds an API key.
func (c *Claude) Available() bool {
	return c.configured
}

// Generate produces raw article content for the given date.
// It uses circuit breaker and retry logic for improved reliability.
func (c *Claude) Generate(ctx context.Context, date string) (*generation.RawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result *generation.RawResponse

	retryErr := retry.Do(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGenerate(ctx, date)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("generation api circuit breaker open, request rejected",
					slog.String("service", "generation-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("generation api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(*generation.RawResponse)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("claude generation failed after retries: %w", retryErr)
	}

	return result, nil
}

// buildPrompt constructs the generation prompt for one calendar day.
// The date anchors the theme so that every day produces a distinct article.
func (c *Claude) buildPrompt(date string) string {
	var b strings.Builder
	b.WriteString("Write today's \"Daily Wisdom\" article for " + date + ".\n\n")
	b.WriteString("Pick one piece of timeless practical wisdom, for example from philosophy, ")
	b.WriteString("science, history, or craft, that fits the character of this particular date, ")
	b.WriteString("and explore it in depth for a thoughtful general reader.\n\n")
	b.WriteString("Requirements:\n")
	b.WriteString("- Markdown, 600 to 800 words\n")
	b.WriteString("- Exactly one H1 title line at the top (\"# ...\")\n")
	b.WriteString("- Concrete examples over abstractions\n")
	b.WriteString("- Finish with a section titled \"" + sourcesHeading + "\" listing 2 to 4 references, ")
	b.WriteString("one per line, formatted as \"- [Title](URL)\"\n")
	return b.String()
}

// doGenerate performs the actual API call without retry or circuit breaker.
func (c *Claude) doGenerate(ctx context.Context, date string) (*generation.RawResponse, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting article generation",
		slog.String("request_id", requestID),
		slog.String("date", date),
		slog.String("model", c.config.Model))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(c.buildPrompt(date)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Article generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return nil, fmt.Errorf("claude api returned unexpected response type")
	}

	body, citations := splitSources(textBlock.Text)

	slog.InfoContext(ctx, "Article generation completed",
		slog.String("request_id", requestID),
		slog.String("date", date),
		slog.Int("body_length", len([]rune(body))),
		slog.Int("citations", len(citations)),
		slog.Duration("duration", duration))

	return &generation.RawResponse{Text: body, Citations: citations}, nil
}

// splitSources separates the article body from the trailing sources section
// and parses each "- [Title](URL)" item into a citation. Text without a
// sources section is returned whole, with no citations.
func splitSources(text string) (string, []generation.Citation) {
	idx := strings.LastIndex(text, sourcesHeading)
	if idx < 0 {
		return text, nil
	}

	body := strings.TrimRight(text[:idx], "\n ")
	section := text[idx+len(sourcesHeading):]

	var citations []generation.Citation
	for _, m := range sourceLinkRe.FindAllStringSubmatch(section, -1) {
		citations = append(citations, generation.Citation{Title: m[1], URI: m[2]})
	}

	return body, citations
}
