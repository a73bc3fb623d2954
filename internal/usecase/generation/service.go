package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/observability/metrics"
	"daily-wisdom/internal/repository"
)

// Service orchestrates base-language article generation.
// It is cache-first: an existing article short-circuits the provider call,
// which guarantees idempotence and avoids duplicate provider cost.
type Service struct {
	repo     repository.ArticleRepository
	provider Provider
}

// NewService creates a generation Service with the given repository and provider.
func NewService(repo repository.ArticleRepository, provider Provider) *Service {
	return &Service{repo: repo, provider: provider}
}

// GenerateArticle returns the base-language article for date, generating and
// persisting it if it does not exist yet. Calling it twice for the same date
// invokes the content provider at most once.
//
// Retry is the caller's responsibility; this method builds one attempt.
func (s *Service) GenerateArticle(ctx context.Context, date string) (*entity.Article, error) {
	cached, err := s.repo.GetArticle(ctx, date, entity.BaseLanguage)
	if err != nil {
		return nil, fmt.Errorf("lookup cached article: %w", err)
	}
	if cached != nil {
		slog.InfoContext(ctx, "article found in cache, skipping generation",
			slog.String("date", date))
		return cached, nil
	}

	return s.generate(ctx, date)
}

// RegenerateArticle always invokes the provider and overwrites any prior
// article for the date. Used by the force path of daily coordination.
func (s *Service) RegenerateArticle(ctx context.Context, date string) (*entity.Article, error) {
	return s.generate(ctx, date)
}

func (s *Service) generate(ctx context.Context, date string) (*entity.Article, error) {
	if s.provider == nil || !s.provider.Available() {
		return nil, ErrProviderUnavailable
	}

	slog.InfoContext(ctx, "generating article",
		slog.String("date", date))

	start := time.Now()
	resp, err := s.provider.Generate(ctx, date)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordArticleGenerated(false)
		return nil, fmt.Errorf("generate content for %s: %w", date, err)
	}

	article := buildArticle(date, resp)
	if err := article.Validate(); err != nil {
		metrics.RecordArticleGenerated(false)
		return nil, fmt.Errorf("generated article invalid: %w", err)
	}

	if err := s.repo.SaveArticle(ctx, article); err != nil {
		metrics.RecordArticleGenerated(false)
		return nil, fmt.Errorf("save generated article: %w", err)
	}

	metrics.RecordArticleGenerated(true)
	metrics.RecordGenerationDuration(duration)

	slog.InfoContext(ctx, "article generated and saved",
		slog.String("date", date),
		slog.String("title", article.Title),
		slog.Int("sources", len(article.Sources)),
		slog.Duration("duration", duration))

	return article, nil
}
