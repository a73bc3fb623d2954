package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"daily-wisdom/internal/domain/entity"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "h1 on first line",
			text: "# Morning Reflection\n\nBody.",
			want: "Morning Reflection",
		},
		{
			name: "h1 after preamble",
			text: "preamble line\n# Buried Title\nmore",
			want: "Buried Title",
		},
		{
			name: "first of several h1s wins",
			text: "# First\n\n# Second",
			want: "First",
		},
		{
			name: "h2 does not match",
			text: "## Subheading Only\n\nBody.",
			want: DefaultTitle,
		},
		{
			name: "hash without space does not match",
			text: "#NoSpace\n\nBody.",
			want: DefaultTitle,
		},
		{
			name: "empty text",
			text: "",
			want: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.text, DefaultTitle))
		})
	}
}

func TestBuildArticle(t *testing.T) {
	resp := &RawResponse{
		Text: "# A Thought\n\nSome wisdom.",
		Citations: []Citation{
			{Title: "Paper A", URI: "https://a.example"},
			{Title: "Paper B", URI: "https://b.example"},
		},
	}

	article := buildArticle("2025-06-15", resp)

	assert.Equal(t, "2025-06-15", article.Date)
	assert.Equal(t, "A Thought", article.Title)
	assert.Equal(t, resp.Text, article.Content)
	assert.Equal(t, entity.BaseLanguage, article.Language)
	assert.False(t, article.IsTranslated)
	assert.Len(t, article.Sources, 2)
	assert.NoError(t, article.Validate())
}

func TestBuildArticle_EmptyText(t *testing.T) {
	article := buildArticle("2025-06-15", &RawResponse{})

	assert.Equal(t, DefaultTitle, article.Title)
	assert.Equal(t, "No content generated", article.Content)
	assert.Empty(t, article.Sources)
	assert.NoError(t, article.Validate())
}

func TestDedupeCitations(t *testing.T) {
	citations := []Citation{
		{Title: "First", URI: "https://one.example"},
		{Title: "Untitled", URI: ""},
		{Title: "Duplicate", URI: "https://one.example"},
		{Title: "", URI: "https://two.example"},
		{Title: "Third", URI: "https://three.example"},
	}

	sources := dedupeCitations(citations)

	assert.Equal(t, []entity.Source{
		{Title: "First", URI: "https://one.example"},
		{Title: "Source", URI: "https://two.example"},
		{Title: "Third", URI: "https://three.example"},
	}, sources, "first occurrence wins, empty URIs dropped, empty titles defaulted")
}

func TestDedupeCitations_Empty(t *testing.T) {
	assert.Empty(t, dedupeCitations(nil))
	assert.Empty(t, dedupeCitations([]Citation{}))
}
