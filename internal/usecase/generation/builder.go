package generation

import (
	"regexp"

	"daily-wisdom/internal/domain/entity"
)

const (
	// DefaultTitle is used when the generated text carries no H1 heading.
	DefaultTitle = "Daily Wisdom"

	// fallbackContent replaces an empty provider response body.
	fallbackContent = "No content generated"

	// defaultCitationTitle names citations the provider returned without a title.
	defaultCitationTitle = "Source"
)

// titleRe matches the first level-1 Markdown heading, in multiline mode.
var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// buildArticle normalizes a raw provider response into a base-language article.
// The title comes from the first H1 heading in the text, falling back to
// DefaultTitle. Citations are de-duplicated by URI, preserving first-seen order.
func buildArticle(date string, resp *RawResponse) *entity.Article {
	content := resp.Text
	if content == "" {
		content = fallbackContent
	}

	return &entity.Article{
		Date:     date,
		Title:    ExtractTitle(resp.Text, DefaultTitle),
		Content:  content,
		Language: entity.BaseLanguage,
		Sources:  dedupeCitations(resp.Citations),
	}
}

// ExtractTitle returns the first H1 heading in text, or defaultTitle if none.
// Translated articles reuse it to pull the localized title out of the
// translated Markdown.
func ExtractTitle(text, defaultTitle string) string {
	if m := titleRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return defaultTitle
}

// dedupeCitations drops citations without a URI and keeps the first
// occurrence of each URI in order.
func dedupeCitations(citations []Citation) []entity.Source {
	seen := make(map[string]struct{}, len(citations))
	sources := make([]entity.Source, 0, len(citations))
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		if _, dup := seen[c.URI]; dup {
			continue
		}
		seen[c.URI] = struct{}{}

		title := c.Title
		if title == "" {
			title = defaultCitationTitle
		}
		sources = append(sources, entity.Source{Title: title, URI: c.URI})
	}
	return sources
}
