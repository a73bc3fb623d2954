package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/handler/http/respond"
	"daily-wisdom/internal/repository"
)

// Ensurer resolves the base-language article for a date, generating it when
// the date is today and nothing exists yet.
type Ensurer interface {
	EnsureArticleForDate(ctx context.Context, date string) (*entity.Article, error)
}

// Translator produces (or returns the cached) translation of a base article.
type Translator interface {
	TranslateArticle(ctx context.Context, base *entity.Article, target entity.Language) (*entity.Article, error)
}

// GetHandler serves one article by date and language. A request for today's
// article that has not been generated yet triggers on-demand generation; a
// request for a missing translation of an existing base article triggers
// on-demand translation. Past dates are never generated retroactively.
type GetHandler struct {
	Repo       repository.ArticleRepository
	Ensure     Ensurer
	Translator Translator
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !entity.IsValidDate(date) {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date))
		return
	}

	langCode := r.PathValue("language")
	if langCode == "" {
		langCode = string(entity.BaseLanguage)
	}
	if !entity.IsSupportedLanguage(langCode) {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("unsupported language %q", langCode))
		return
	}
	lang := entity.Language(langCode)

	art, err := h.Repo.GetArticle(r.Context(), date, lang)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if art != nil {
		respond.JSON(w, http.StatusOK, toDTO(art))
		return
	}

	art, err = h.resolveMiss(r.Context(), date, lang)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			respond.SafeError(w, http.StatusNotFound, fmt.Errorf("no article found for %s", date))
			return
		}
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(art))
}

// resolveMiss handles a cache miss. Only today's article may be generated on
// demand; translations are derived on demand whenever the base exists.
func (h GetHandler) resolveMiss(ctx context.Context, date string, lang entity.Language) (*entity.Article, error) {
	base, err := h.Repo.GetArticle(ctx, date, entity.BaseLanguage)
	if err != nil {
		return nil, err
	}

	if base == nil {
		if date != entity.Today() {
			return nil, entity.ErrNotFound
		}
		base, err = h.Ensure.EnsureArticleForDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("generate today's article: %w", err)
		}
		// A run can settle without producing a base article, for example a
		// joined translations-only run. Report not-found rather than a
		// server fault; the client may retry.
		if base == nil {
			return nil, entity.ErrNotFound
		}
	}

	if lang == entity.BaseLanguage {
		return base, nil
	}

	translated, err := h.Translator.TranslateArticle(ctx, base, lang)
	if err != nil {
		return nil, fmt.Errorf("translate article: %w", err)
	}
	return translated, nil
}
