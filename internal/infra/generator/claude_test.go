package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-wisdom/internal/usecase/generation"
)

func TestNewClaude_Availability(t *testing.T) {
	assert.True(t, NewClaude("test-key").Available())
	assert.False(t, NewClaude("").Available())
}

func TestClaude_BuildPrompt(t *testing.T) {
	c := NewClaude("test-key")

	prompt := c.buildPrompt("2025-06-15")

	assert.Contains(t, prompt, "2025-06-15")
	assert.Contains(t, prompt, "# ...")
	assert.Contains(t, prompt, sourcesHeading)
}

func TestSplitSources(t *testing.T) {
	text := strings.Join([]string{
		"# On Patience",
		"",
		"Body paragraph about patience.",
		"",
		"## Sources",
		"- [Meditations](https://example.com/meditations)",
		"* [Letters from a Stoic](https://example.com/letters)",
		"- malformed line without a link",
	}, "\n")

	body, citations := splitSources(text)

	assert.Equal(t, "# On Patience\n\nBody paragraph about patience.", body)
	require.Len(t, citations, 2)
	assert.Equal(t, generation.Citation{Title: "Meditations", URI: "https://example.com/meditations"}, citations[0])
	assert.Equal(t, generation.Citation{Title: "Letters from a Stoic", URI: "https://example.com/letters"}, citations[1])
}

func TestSplitSources_NoSection(t *testing.T) {
	text := "# On Patience\n\nBody only."

	body, citations := splitSources(text)

	assert.Equal(t, text, body)
	assert.Empty(t, citations)
}

func TestSplitSources_EmptySection(t *testing.T) {
	body, citations := splitSources("# Title\n\nBody.\n\n## Sources\n")

	assert.Equal(t, "# Title\n\nBody.", body)
	assert.Empty(t, citations)
}

func TestNoOp_Generate(t *testing.T) {
	resp, err := NewNoOp().Generate(context.Background(), "2025-06-15")

	require.NoError(t, err)
	assert.Contains(t, resp.Text, "2025-06-15")
	assert.True(t, strings.HasPrefix(resp.Text, "# "))
	assert.Empty(t, resp.Citations)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.NotEmpty(t, cfg.Model)
}

func TestLoadConfig_MaxTokensFromEnv(t *testing.T) {
	t.Setenv("GENERATOR_MAX_TOKENS", "8192")
	assert.Equal(t, 8192, LoadConfig().MaxTokens)
}

func TestLoadConfig_MaxTokensOutOfRange(t *testing.T) {
	t.Setenv("GENERATOR_MAX_TOKENS", "99")
	assert.Equal(t, 4096, LoadConfig().MaxTokens)
}

func TestLoadConfig_MaxTokensInvalid(t *testing.T) {
	t.Setenv("GENERATOR_MAX_TOKENS", "lots")
	assert.Equal(t, 4096, LoadConfig().MaxTokens)
}
