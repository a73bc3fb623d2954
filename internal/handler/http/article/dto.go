// Package article provides HTTP handlers for reading daily articles:
// fetching by date and language, and listing available dates.
package article

import (
	"time"

	"daily-wisdom/internal/domain/entity"
)

// DTO represents the JSON structure for one article.
type DTO struct {
	Date         string          `json:"date" example:"2025-06-15"`
	Title        string          `json:"title" example:"On Patience"`
	Content      string          `json:"content"`
	Language     string          `json:"language" example:"en"`
	IsTranslated bool            `json:"is_translated"`
	Sources      []entity.Source `json:"sources"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toDTO(a *entity.Article) DTO {
	sources := a.Sources
	if sources == nil {
		sources = []entity.Source{}
	}
	return DTO{
		Date:         a.Date,
		Title:        a.Title,
		Content:      a.Content,
		Language:     string(a.Language),
		IsTranslated: a.IsTranslated,
		Sources:      sources,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
