package config

import "time"

const (
	// DefaultCatalogURL is the OpenRouter model list endpoint.
	DefaultCatalogURL = "https://openrouter.ai/api/v1/models"

	DefaultCatalogTTL        = time.Hour
	DefaultCatalogRPM        = 6
	DefaultSystemInterval    = 30 * time.Second
	DefaultHTTPAddr          = "127.0.0.1:7878"
	minSystemRefreshInterval = time.Second
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Catalog: CatalogConfig{
			URL:               DefaultCatalogURL,
			TTL:               DefaultCatalogTTL,
			RequestsPerMinute: DefaultCatalogRPM,
		},

		LLM: DefaultLLMConfig(),

		Refresh: RefreshConfig{
			SystemInterval: DefaultSystemInterval,
		},

		HTTP: HTTPConfig{
			Addr:        DefaultHTTPAddr,
			CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
	}
}

// DefaultLLMConfig returns sensible defaults for LLM configuration.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		DefaultProvider: "", // Auto-detect based on available keys
		DefaultModel:    "", // Provider-specific defaults
	}
}
