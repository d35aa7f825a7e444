package providers

import "github.com/cleanos-ai/cleanos/internal/models"

// Known provider ids, in display order.
const (
	OpenAI = "openai"
	Gemini = "gemini"
	Claude = "claude"
	Kimi   = "kimi"
)

func cost(v float64) *float64 { return &v }

var (
	capsFull      = []string{"chat", "vision", "json", "tools"}
	capsReasoning = []string{"chat", "json"}
)

var fallbackModels = map[string][]models.ModelDefinition{
	OpenAI: {
		{
			ID:              "gpt-4o",
			Name:            "GPT-4o",
			Description:     "Most capable model with vision support and advanced reasoning.",
			MaxTokens:       128000,
			CostPer1KInput:  cost(0.005),
			CostPer1KOutput: cost(0.015),
			Capabilities:    capsFull,
		},
		{
			ID:              "gpt-4o-mini",
			Name:            "GPT-4o Mini",
			Description:     "Fast and cost-effective for routine file analysis tasks.",
			MaxTokens:       128000,
			CostPer1KInput:  cost(0.00015),
			CostPer1KOutput: cost(0.0006),
			Capabilities:    capsFull,
		},
		{
			ID:              "o1",
			Name:            "o1",
			Description:     "Advanced reasoning model for complex analysis.",
			MaxTokens:       200000,
			CostPer1KInput:  cost(0.015),
			CostPer1KOutput: cost(0.06),
			Capabilities:    capsReasoning,
		},
		{
			ID:              "o1-mini",
			Name:            "o1 Mini",
			Description:     "Efficient reasoning model for focused tasks.",
			MaxTokens:       128000,
			CostPer1KInput:  cost(0.003),
			CostPer1KOutput: cost(0.012),
			Capabilities:    capsReasoning,
		},
	},
	Claude: {
		{
			ID:              "claude-opus-4-20250514",
			Name:            "Claude Opus 4",
			Description:     "Most capable model for complex file analysis and reasoning.",
			MaxTokens:       200000,
			CostPer1KInput:  cost(0.015),
			CostPer1KOutput: cost(0.075),
			Capabilities:    capsFull,
		},
		{
			ID:              "claude-sonnet-4-20250514",
			Name:            "Claude Sonnet 4",
			Description:     "Balanced performance for everyday file analysis.",
			MaxTokens:       200000,
			CostPer1KInput:  cost(0.003),
			CostPer1KOutput: cost(0.015),
			Capabilities:    capsFull,
		},
		{
			ID:              "claude-3-5-haiku-20241022",
			Name:            "Claude 3.5 Haiku",
			Description:     "Fast and affordable for high-volume tasks.",
			MaxTokens:       200000,
			CostPer1KInput:  cost(0.001),
			CostPer1KOutput: cost(0.005),
			Capabilities:    capsFull,
		},
	},
	Gemini: {
		{
			ID:              "gemini-2.0-flash",
			Name:            "Gemini 2.0 Flash",
			Description:     "Fast and capable with a 1M token context window.",
			MaxTokens:       1048576,
			CostPer1KInput:  cost(0.0001),
			CostPer1KOutput: cost(0.0004),
			Capabilities:    capsFull,
		},
		{
			ID:              "gemini-1.5-pro",
			Name:            "Gemini 1.5 Pro",
			Description:     "Advanced reasoning with extended context for large file sets.",
			MaxTokens:       2097152,
			CostPer1KInput:  cost(0.00125),
			CostPer1KOutput: cost(0.005),
			Capabilities:    capsFull,
		},
	},
	Kimi: {
		{
			ID:           "moonshot-v1-128k",
			Name:         "Kimi 128K",
			Description:  "Long context model for analyzing large file sets.",
			MaxTokens:    128000,
			Capabilities: capsReasoning,
		},
		{
			ID:           "moonshot-v1-32k",
			Name:         "Kimi 32K",
			Description:  "Balanced context model for general file analysis.",
			MaxTokens:    32000,
			Capabilities: capsReasoning,
		},
	},
}

func apiKeyAuth(vendor, placeholder, helpURL string) []models.AuthMethod {
	return []models.AuthMethod{{
		Type:           models.AuthAPI,
		Label:          "API Key",
		Description:    "Your " + vendor + " API key",
		KeyPlaceholder: placeholder,
		HelpURL:        helpURL,
	}}
}

var allCaps = models.ProviderCapabilities{Chat: true, Vision: true, JSON: true, Streaming: true, Tools: true}

// meta is the static provider metadata; Models is filled per request.
var meta = []models.ProviderDefinition{
	{
		ID:           OpenAI,
		Name:         "OpenAI",
		Description:  "GPT-4o and o1 models for file analysis and intelligent categorization.",
		AuthMethods:  apiKeyAuth("OpenAI", "sk-...", "https://platform.openai.com/api-keys"),
		DefaultModel: "gpt-4o-mini",
		Capabilities: allCaps,
	},
	{
		ID:           Gemini,
		Name:         "Google Gemini",
		Description:  "Gemini models with large context windows for bulk file analysis.",
		AuthMethods:  apiKeyAuth("Google AI Studio", "AIza...", "https://aistudio.google.com/apikey"),
		DefaultModel: "gemini-2.0-flash",
		Capabilities: allCaps,
	},
	{
		ID:           Claude,
		Name:         "Anthropic Claude",
		Description:  "Claude models with strong analytical capabilities for file organization.",
		AuthMethods:  apiKeyAuth("Anthropic", "sk-ant-...", "https://console.anthropic.com/settings/keys"),
		DefaultModel: "claude-sonnet-4-20250514",
		Capabilities: allCaps,
	},
	{
		ID:           Kimi,
		Name:         "Moonshot Kimi",
		Description:  "Kimi models for multilingual file analysis with long context support.",
		AuthMethods:  apiKeyAuth("Moonshot", "sk-...", "https://platform.moonshot.cn/console/api-keys"),
		DefaultModel: "moonshot-v1-128k",
		Capabilities: models.ProviderCapabilities{Chat: true, JSON: true, Streaming: true},
	},
}
