package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/resilience/circuitbreaker"
	"daily-wisdom/internal/resilience/retry"
	"daily-wisdom/internal/usecase/generation"
	"daily-wisdom/internal/usecase/translation"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements translation.Provider using OpenAI's chat API.
// It is the fallback in the provider chain and supports every target
// language, including those DeepL cannot serve.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	model          string
	configured     bool
}

// NewOpenAI creates an OpenAI translator with the given API key.
// An empty API key yields a provider that reports itself unavailable.
//
// Environment variables:
//   - TRANSLATOR_OPENAI_MODEL: model identifier (default: gpt-4o-mini)
func NewOpenAI(apiKey string) *OpenAI {
	model := os.Getenv("TRANSLATOR_OPENAI_MODEL")
	if model == "" {
		model = defaultOpenAIModel
	}

	slog.Info("Initialized OpenAI translator",
		slog.String("model", model),
		slog.Bool("configured", apiKey != ""))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.TranslationSegmentConfig(),
		model:          model,
		configured:     apiKey != "",
	}
}

// Name identifies the provider in logs and metrics.
func (o *OpenAI) Name() string {
	return "openai"
}

// Available reports whether the provider holds an API key.
func (o *OpenAI) Available() bool {
	return o.configured
}

// SupportsLanguage reports true for every supported language.
func (o *OpenAI) SupportsLanguage(lang entity.Language) bool {
	return entity.IsSupportedLanguage(string(lang))
}

// Translate renders the whole article in target with a single chat
// completion, then pulls the localized title back out of the Markdown.
func (o *OpenAI) Translate(ctx context.Context, base *entity.Article, target entity.Language) (*translation.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	var translated string

	retryErr := retry.Do(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doTranslate(ctx, base.Content, target)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		translated = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("openai translate failed after retries: %w", retryErr)
	}

	return &translation.Result{
		Title:   generation.ExtractTitle(translated, base.Title),
		Content: translated,
	}, nil
}

func (o *OpenAI) buildPrompt(target entity.Language) string {
	return fmt.Sprintf("Translate the user's Markdown article into %s. "+
		"Preserve all Markdown formatting exactly, including the H1 title line. "+
		"Output only the translated article, nothing else.", target.Name())
}

// doTranslate performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doTranslate(ctx context.Context, content string, target entity.Language) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: o.buildPrompt(target),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: content,
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "openai translation failed",
			slog.String("language", string(target)),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}

	slog.InfoContext(ctx, "openai translation completed",
		slog.String("language", string(target)),
		slog.Duration("duration", duration))

	return resp.Choices[0].Message.Content, nil
}
