package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleanos-ai/cleanos/internal/models"
)

var testDefs = []models.ProviderDefinition{
	{
		ID:          "anthropic",
		Name:        "Anthropic",
		Description: "Claude models",
		AuthMethods: []models.AuthMethod{{
			Type:           models.AuthAPI,
			KeyPlaceholder: "sk-ant-...",
			HelpURL:        "https://console.anthropic.com",
		}},
	},
	{ID: "ollama", Name: "Ollama"},
}

func TestBuildProviderOptions(t *testing.T) {
	options := BuildProviderOptions(testDefs)

	assert.Len(t, options, 2)
	assert.Equal(t, "anthropic", options[0].Value)
	assert.Contains(t, options[0].Key, "Anthropic")
	assert.Contains(t, options[0].Key, "Claude models")
	assert.Equal(t, "Ollama", options[1].Key)
}

func TestKeyPlaceholder(t *testing.T) {
	assert.Equal(t, "sk-ant-...", KeyPlaceholder(testDefs[0]))
	assert.Equal(t, "API key", KeyPlaceholder(testDefs[1]))
}

func TestKeyHelp(t *testing.T) {
	assert.Equal(t, "Get a key at https://console.anthropic.com", KeyHelp(testDefs[0]))
	assert.Empty(t, KeyHelp(testDefs[1]))
}

func TestValidateKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateKey("sk-ant-123"))
		assert.NoError(t, ValidateKey("  sk-ant-123  "))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, ValidateKey("   "))
	})

	t.Run("inner whitespace", func(t *testing.T) {
		assert.Error(t, ValidateKey("sk ant"))
	})
}
