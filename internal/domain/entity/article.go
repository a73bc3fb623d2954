// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and Source, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Article represents one generated (or translated) daily article.
// For a given date there is at most one Article per language; the base-language
// article is authoritative and every other language is derived from it.
type Article struct {
	ID           int64
	Date         string // calendar day, UTC, canonical "YYYY-MM-DD"
	Title        string
	Content      string // long-form Markdown text
	Language     Language
	IsTranslated bool
	Sources      []Source // ordered, URI unique within the article
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Source is a citation discovered during article generation.
// Translations carry the base article's sources unchanged.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// IsBase reports whether the article is the base-language original.
func (a *Article) IsBase() bool {
	return a.Language == BaseLanguage
}

// TextLength returns the combined character count of title and content.
// Translation providers use it for quota pre-flight checks.
func (a *Article) TextLength() int {
	return len([]rune(a.Title)) + len([]rune(a.Content))
}
