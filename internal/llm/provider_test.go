package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/config"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: "system", Content: "s"}, NewSystemMessage("s"))
	assert.Equal(t, Message{Role: "user", Content: "u"}, NewUserMessage("u"))
	assert.Equal(t, Message{Role: "assistant", Content: "a"}, NewAssistantMessage("a"))
}

func stored(keys map[string]string) KeySource {
	return func(p string) string { return keys[p] }
}

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LLMConfig
		keys     KeySource
		expected string
	}{
		{"no keys", config.LLMConfig{}, nil, ""},
		{"openai env", config.LLMConfig{OpenAIAPIKey: "sk"}, nil, "openai"},
		{"kimi env", config.LLMConfig{MoonshotAPIKey: "sk"}, nil, "kimi"},
		{
			"claude wins over openai",
			config.LLMConfig{OpenAIAPIKey: "sk", AnthropicAPIKey: "sk-ant"},
			nil, "claude",
		},
		{
			"gemini before kimi",
			config.LLMConfig{MoonshotAPIKey: "sk"},
			stored(map[string]string{"gemini": "g"}), "gemini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectProvider(keyLookup(tt.cfg, tt.keys)))
			assert.Equal(t, tt.expected != "", IsConfigured(tt.cfg, tt.keys))
		})
	}
}

func TestKeyLookup_StoredKeyWins(t *testing.T) {
	lookup := keyLookup(config.LLMConfig{OpenAIAPIKey: "env"}, stored(map[string]string{"openai": "db"}))
	assert.Equal(t, "db", lookup("openai"))

	lookup = keyLookup(config.LLMConfig{OpenAIAPIKey: "env"}, stored(nil))
	assert.Equal(t, "env", lookup("openai"))
}

func TestNew(t *testing.T) {
	p, err := New("claude", "sk-ant", "")
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name())

	p, err = New("gemini", "g", "gemini-1.5-pro")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
	assert.Equal(t, "gemini-1.5-pro", p.DefaultModel())

	_, err = New("openai", "  ", "")
	assert.Error(t, err)

	_, err = New("mistral", "k", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNewProvider_NoConfig(t *testing.T) {
	_, err := NewProvider(config.LLMConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no AI provider configured")
}

func TestNewProviderWithOverrides(t *testing.T) {
	cfg := config.LLMConfig{
		AnthropicAPIKey: "sk-ant",
		OpenAIAPIKey:    "sk",
		DefaultProvider: "claude",
		DefaultModel:    "claude-3-5-haiku-20241022",
	}

	t.Run("configured default", func(t *testing.T) {
		p, err := NewProvider(cfg)
		require.NoError(t, err)
		assert.Equal(t, "claude", p.Name())
		assert.Equal(t, "claude-3-5-haiku-20241022", p.DefaultModel())
	})

	t.Run("provider override ignores default model", func(t *testing.T) {
		p, err := NewProviderWithOverrides(cfg, nil, "openai", "")
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())
		assert.Equal(t, "gpt-4o-mini", p.DefaultModel())
	})

	t.Run("model override", func(t *testing.T) {
		p, err := NewProviderWithOverrides(cfg, nil, "openai", "gpt-4o")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", p.DefaultModel())
	})

	t.Run("stored key", func(t *testing.T) {
		p, err := NewProviderWithOverrides(config.LLMConfig{}, stored(map[string]string{"kimi": "k"}), "", "")
		require.NoError(t, err)
		assert.Equal(t, "kimi", p.Name())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewProviderWithOverrides(cfg, nil, "gemini", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no API key for gemini")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProviderWithOverrides(cfg, nil, "unknown", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider")
	})
}

func TestProviderTypes(t *testing.T) {
	assert.Equal(t, ProviderType("openai"), ProviderOpenAI)
	assert.Equal(t, ProviderType("gemini"), ProviderGemini)
	assert.Equal(t, ProviderType("claude"), ProviderClaude)
	assert.Equal(t, ProviderType("kimi"), ProviderKimi)
}
