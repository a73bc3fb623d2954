package repository

import (
	"context"

	"daily-wisdom/internal/domain/entity"
)

// ArticleRepository is the persistence boundary for daily articles.
// Articles are addressed by the (date, language) composite key.
type ArticleRepository interface {
	// GetArticle returns the article for the given day and language,
	// or (nil, nil) if none exists.
	GetArticle(ctx context.Context, date string, language entity.Language) (*entity.Article, error)

	// SaveArticle upserts an article by its (date, language) key.
	// Re-saving identical derived content is idempotent.
	SaveArticle(ctx context.Context, article *entity.Article) error

	// HasArticleForDate reports whether a base-language article exists for the day.
	HasArticleForDate(ctx context.Context, date string) (bool, error)

	// HasTranslation reports whether a translation exists for the day and language.
	HasTranslation(ctx context.Context, date string, language entity.Language) (bool, error)

	// ListAvailableDates returns every date with a base-language article,
	// newest first.
	ListAvailableDates(ctx context.Context) ([]string, error)

	// ResetDatabase wipes all stored articles and days. There is no
	// per-row deletion API; reset is all or nothing.
	ResetDatabase(ctx context.Context) error
}
