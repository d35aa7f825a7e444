// Package llm provides interfaces and implementations for LLM providers.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/providers"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Chat sends messages and returns a streaming response.
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (*StreamReader, error)

	// ChatSync sends messages and waits for complete response.
	ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error)

	// Name returns the provider id (e.g., "claude", "openai").
	Name() string

	// Models returns known model IDs for this provider.
	Models() []string

	// DefaultModel returns the model used when a request names none.
	DefaultModel() string
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // Message content
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// ChatOptions configures a chat request.
type ChatOptions struct {
	Model       string  // Model to use (empty = provider default)
	MaxTokens   int     // Maximum tokens in response
	Temperature float64 // Sampling temperature (0-1)
	Stream      bool    // Enable streaming response
}

// DefaultTemperature is used for every CleanOS request.
const DefaultTemperature = 0.3

// Response represents a complete chat response.
type Response struct {
	Content      string // Response content
	Model        string // Model used
	FinishReason string // Why generation stopped
	Usage        Usage  // Token usage
}

// Usage tracks token usage for a request.
type Usage struct {
	PromptTokens     int // Tokens in prompt
	CompletionTokens int // Tokens in completion
	TotalTokens      int // Total tokens
}

// ProviderType represents supported LLM providers.
type ProviderType string

const (
	ProviderOpenAI ProviderType = providers.OpenAI
	ProviderGemini ProviderType = providers.Gemini
	ProviderClaude ProviderType = providers.Claude
	ProviderKimi   ProviderType = providers.Kimi
)

// detectOrder is the priority used when no provider is named.
var detectOrder = []ProviderType{ProviderClaude, ProviderOpenAI, ProviderGemini, ProviderKimi}

// KeySource returns the API key for a provider id, or "" when none is known.
type KeySource func(provider string) string

// New creates the provider identified by id.
func New(id, apiKey, model string) (Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: API key is required", id)
	}

	switch ProviderType(id) {
	case ProviderClaude:
		return NewAnthropicProvider(apiKey, model)
	case ProviderOpenAI, ProviderGemini, ProviderKimi:
		return NewCompatProvider(id, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: %s)", id, strings.Join(providers.IDs(), ", "))
	}
}

// NewProvider creates a provider from configuration, auto-detecting it
// from the environment keys when none is set.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	return NewProviderWithOverrides(cfg, nil, "", "")
}

// NewProviderWithOverrides creates a provider with optional overrides.
// keys is consulted before the environment keys in cfg; it may be nil.
func NewProviderWithOverrides(cfg config.LLMConfig, keys KeySource, providerOverride, modelOverride string) (Provider, error) {
	lookup := keyLookup(cfg, keys)

	providerName := providerOverride
	if providerName == "" {
		providerName = cfg.DefaultProvider
	}
	if providerName == "" {
		providerName = detectProvider(lookup)
	}
	if providerName == "" {
		return nil, fmt.Errorf("no AI provider configured: store an API key or set OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY or MOONSHOT_API_KEY")
	}

	if _, ok := providers.Lookup(providerName); !ok {
		return nil, fmt.Errorf("unknown provider: %s (supported: %s)", providerName, strings.Join(providers.IDs(), ", "))
	}

	key := lookup(providerName)
	if key == "" {
		return nil, fmt.Errorf("no API key for %s", providerName)
	}

	model := modelOverride
	if model == "" && providerName == cfg.DefaultProvider {
		model = cfg.DefaultModel
	}

	return New(providerName, key, model)
}

func keyLookup(cfg config.LLMConfig, keys KeySource) KeySource {
	return func(provider string) string {
		if keys != nil {
			if k := keys(provider); k != "" {
				return k
			}
		}
		return cfg.KeyFor(provider)
	}
}

// detectProvider determines which provider to use based on available API keys.
// Priority: Claude > OpenAI > Gemini > Kimi
func detectProvider(keys KeySource) string {
	for _, p := range detectOrder {
		if keys(string(p)) != "" {
			return string(p)
		}
	}
	return ""
}

// IsConfigured returns true if any provider has a key.
func IsConfigured(cfg config.LLMConfig, keys KeySource) bool {
	return detectProvider(keyLookup(cfg, keys)) != ""
}

// ConnectionPrompt is sent to check that a key works.
const ConnectionPrompt = "Reply with exactly: OK"

// Ping sends a minimal request through p and reports whether it succeeded.
func Ping(ctx context.Context, p Provider, model string) error {
	_, err := p.ChatSync(ctx, []Message{NewUserMessage(ConnectionPrompt)}, ChatOptions{
		Model:       model,
		MaxTokens:   10,
		Temperature: DefaultTemperature,
	})
	return err
}

// knownModels returns the built-in model ids for a provider.
func knownModels(id string) []string {
	defs := providers.FallbackModels(id)
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.ID
	}
	return ids
}
