package translation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/observability/metrics"
	"daily-wisdom/internal/repository"
)

// Service translates base-language articles through an ordered provider chain.
// Like generation it is cache-first: an existing translation short-circuits
// the provider call.
type Service struct {
	repo      repository.ArticleRepository
	providers []Provider
}

// NewService creates a translation Service. Providers are tried in the given
// order; the first one that is available and supports the target language
// handles the request, and its failure falls through to the next.
func NewService(repo repository.ArticleRepository, providers ...Provider) *Service {
	return &Service{repo: repo, providers: providers}
}

// TranslateArticle returns the article for base.Date in target, translating
// and persisting it if it does not exist yet.
func (s *Service) TranslateArticle(ctx context.Context, base *entity.Article, target entity.Language) (*entity.Article, error) {
	if err := s.checkTarget(base, target); err != nil {
		return nil, err
	}

	cached, err := s.repo.GetArticle(ctx, base.Date, target)
	if err != nil {
		return nil, fmt.Errorf("lookup cached translation: %w", err)
	}
	if cached != nil {
		slog.InfoContext(ctx, "translation found in cache",
			slog.String("date", base.Date),
			slog.String("language", string(target)))
		return cached, nil
	}

	return s.translate(ctx, base, target)
}

// RetranslateArticle always runs the provider chain and overwrites any prior
// translation. Used by the force path of daily coordination.
func (s *Service) RetranslateArticle(ctx context.Context, base *entity.Article, target entity.Language) (*entity.Article, error) {
	if err := s.checkTarget(base, target); err != nil {
		return nil, err
	}
	return s.translate(ctx, base, target)
}

func (s *Service) checkTarget(base *entity.Article, target entity.Language) error {
	if !entity.IsSupportedLanguage(string(target)) {
		return fmt.Errorf("%w: %s", entity.ErrUnsupportedLanguage, target)
	}
	if target == entity.BaseLanguage {
		return fmt.Errorf("%w: %s is the base language", entity.ErrUnsupportedLanguage, target)
	}
	if base == nil || !base.IsBase() {
		return fmt.Errorf("translation source must be a base-language article")
	}
	return nil
}

func (s *Service) translate(ctx context.Context, base *entity.Article, target entity.Language) (*entity.Article, error) {
	var lastErr error
	tried := false

	for _, p := range s.providers {
		if !p.Available() || !p.SupportsLanguage(target) {
			continue
		}
		tried = true

		if lastErr != nil {
			slog.WarnContext(ctx, "falling back to next translation provider",
				slog.String("provider", p.Name()),
				slog.String("language", string(target)),
				slog.Any("cause", lastErr))
		}

		article, err := s.translateWith(ctx, p, base, target)
		if err != nil {
			lastErr = err
			continue
		}
		return article, nil
	}

	if !tried {
		metrics.RecordTranslation(string(target), "none", false)
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, target)
	}
	return nil, lastErr
}

func (s *Service) translateWith(ctx context.Context, p Provider, base *entity.Article, target entity.Language) (*entity.Article, error) {
	slog.InfoContext(ctx, "translating article",
		slog.String("date", base.Date),
		slog.String("language", string(target)),
		slog.String("provider", p.Name()))

	start := time.Now()
	res, err := p.Translate(ctx, base, target)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordTranslation(string(target), p.Name(), false)
		return nil, fmt.Errorf("translate %s to %s via %s: %w", base.Date, target, p.Name(), err)
	}

	article := &entity.Article{
		Date:         base.Date,
		Title:        res.Title,
		Content:      res.Content,
		Language:     target,
		IsTranslated: true,
		Sources:      base.Sources,
	}
	if err := article.Validate(); err != nil {
		metrics.RecordTranslation(string(target), p.Name(), false)
		return nil, fmt.Errorf("translated article invalid: %w", err)
	}

	if err := s.repo.SaveArticle(ctx, article); err != nil {
		metrics.RecordTranslation(string(target), p.Name(), false)
		return nil, fmt.Errorf("save translation: %w", err)
	}

	metrics.RecordTranslation(string(target), p.Name(), true)
	metrics.RecordTranslationDuration(p.Name(), duration)

	slog.InfoContext(ctx, "article translated and saved",
		slog.String("date", base.Date),
		slog.String("language", string(target)),
		slog.String("provider", p.Name()),
		slog.Duration("duration", duration))

	return article, nil
}
