package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/repository"
)

// ArticleRepo persists daily articles in PostgreSQL. Each calendar day has
// one row in days and up to one row per language in articles.
type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `a.id, d.date, a.title, a.content, a.language, a.is_translated, a.sources, a.created_at, a.updated_at`

func (repo *ArticleRepo) GetArticle(ctx context.Context, date string, language entity.Language) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles a
INNER JOIN days d ON a.day_id = d.id
WHERE d.date = $1 AND a.language = $2`

	row := repo.db.QueryRowContext(ctx, query, date, string(language))

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetArticle: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) SaveArticle(ctx context.Context, article *entity.Article) error {
	sources, err := json.Marshal(article.Sources)
	if err != nil {
		return fmt.Errorf("SaveArticle: marshal sources: %w", err)
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("SaveArticle: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var dayID int64
	const upsertDay = `
INSERT INTO days (date) VALUES ($1)
ON CONFLICT (date) DO UPDATE SET date = EXCLUDED.date
RETURNING id`
	if err := tx.QueryRowContext(ctx, upsertDay, article.Date).Scan(&dayID); err != nil {
		return fmt.Errorf("SaveArticle: upsert day: %w", err)
	}

	const upsertArticle = `
INSERT INTO articles (day_id, language, title, content, is_translated, sources, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (day_id, language) DO UPDATE SET
    title         = EXCLUDED.title,
    content       = EXCLUDED.content,
    is_translated = EXCLUDED.is_translated,
    sources       = EXCLUDED.sources,
    updated_at    = now()`
	if _, err := tx.ExecContext(ctx, upsertArticle,
		dayID, string(article.Language), article.Title, article.Content,
		article.IsTranslated, sources); err != nil {
		return fmt.Errorf("SaveArticle: upsert article: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveArticle: commit: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) HasArticleForDate(ctx context.Context, date string) (bool, error) {
	return repo.exists(ctx, date, entity.BaseLanguage)
}

func (repo *ArticleRepo) HasTranslation(ctx context.Context, date string, language entity.Language) (bool, error) {
	return repo.exists(ctx, date, language)
}

func (repo *ArticleRepo) exists(ctx context.Context, date string, language entity.Language) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1
    FROM articles a
    INNER JOIN days d ON a.day_id = d.id
    WHERE d.date = $1 AND a.language = $2
)`
	var found bool
	if err := repo.db.QueryRowContext(ctx, query, date, string(language)).Scan(&found); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return found, nil
}

func (repo *ArticleRepo) ListAvailableDates(ctx context.Context) ([]string, error) {
	const query = `
SELECT d.date
FROM days d
INNER JOIN articles a ON a.day_id = d.id AND a.language = $1
ORDER BY d.date DESC`

	rows, err := repo.db.QueryContext(ctx, query, string(entity.BaseLanguage))
	if err != nil {
		return nil, fmt.Errorf("ListAvailableDates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dates := make([]string, 0, 64)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("ListAvailableDates: Scan: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// ResetDatabase removes every stored day and article. Identity sequences
// restart so a rebuilt dataset gets fresh ids.
func (repo *ArticleRepo) ResetDatabase(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, `TRUNCATE articles, days RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("ResetDatabase: %w", err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		article    entity.Article
		language   string
		sourcesRaw []byte
	)
	if err := row.Scan(&article.ID, &article.Date, &article.Title, &article.Content,
		&language, &article.IsTranslated, &sourcesRaw,
		&article.CreatedAt, &article.UpdatedAt); err != nil {
		return nil, err
	}

	article.Language = entity.Language(language)
	if len(sourcesRaw) > 0 {
		if err := json.Unmarshal(sourcesRaw, &article.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources: %w", err)
		}
	}
	return &article, nil
}
