package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-wisdom/internal/domain/entity"
)

func TestOpenAI_Availability(t *testing.T) {
	assert.True(t, NewOpenAI("key").Available())
	assert.False(t, NewOpenAI("").Available())
}

func TestOpenAI_SupportsAllLanguages(t *testing.T) {
	o := NewOpenAI("key")

	for _, lang := range entity.TranslationTargets() {
		assert.True(t, o.SupportsLanguage(lang), "expected support for %s", lang)
	}
	assert.False(t, o.SupportsLanguage(entity.Language("xx")))
}

func TestOpenAI_BuildPrompt(t *testing.T) {
	o := NewOpenAI("key")

	prompt := o.buildPrompt(entity.LangArabic)

	assert.Contains(t, prompt, "Arabic")
	assert.Contains(t, prompt, "Markdown")
}

func TestOpenAI_ModelFromEnv(t *testing.T) {
	t.Setenv("TRANSLATOR_OPENAI_MODEL", "gpt-4o")

	o := NewOpenAI("key")

	assert.Equal(t, "gpt-4o", o.model)
}

func TestNoOp_Translate(t *testing.T) {
	base := testArticle()

	result, err := NewNoOp().Translate(context.Background(), base, entity.LangJapanese)

	require.NoError(t, err)
	assert.Equal(t, base.Title, result.Title)
	assert.Equal(t, base.Content, result.Content)
}
