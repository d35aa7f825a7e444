// Package config handles application configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all CleanOS data ($XDG_DATA_HOME/cleanos-ai)
	BaseDir string

	// Model catalog settings
	Catalog CatalogConfig

	// AI provider settings
	LLM LLMConfig

	// Background refresh settings
	Refresh RefreshConfig

	// Local HTTP API settings
	HTTP HTTPConfig

	// UpdateURL is the release manifest checked by "cleanos update".
	// Empty disables update checks.
	UpdateURL string

	// Debug enables debug log output
	Debug bool
}

// CatalogConfig controls the remote model catalog.
type CatalogConfig struct {
	// URL of the catalog endpoint
	URL string
	// TTL is how long a fetched catalog is served from memory
	TTL time.Duration
	// RequestsPerMinute caps catalog fetches
	RequestsPerMinute int
}

// LLMConfig holds AI provider configuration.
type LLMConfig struct {
	// API keys read from the environment; keys stored through the
	// credentials table take precedence at runtime.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
	MoonshotAPIKey  string

	// Default provider: "openai", "gemini", "claude", "kimi" (auto-detected if empty)
	DefaultProvider string
	// Default model (provider-specific default if empty)
	DefaultModel string
}

// KeyFor returns the environment-provided key for a provider id.
func (c LLMConfig) KeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "claude":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "kimi":
		return c.MoonshotAPIKey
	default:
		return ""
	}
}

// RefreshConfig controls periodic refresh of system data.
type RefreshConfig struct {
	// SystemInterval between system info refreshes
	SystemInterval time.Duration
}

// HTTPConfig controls the local HTTP API.
type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

// Environment variables read by Load.
const (
	EnvHome        = "CLEANOS_HOME"
	EnvCatalogURL  = "CLEANOS_CATALOG_URL"
	EnvDebug       = "CLEANOS_DEBUG"
	EnvHTTPAddr    = "CLEANOS_HTTP_ADDR"
	EnvUpdateURL   = "CLEANOS_UPDATE_URL"
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvAnthropic   = "ANTHROPIC_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvMoonshotKey = "MOONSHOT_API_KEY"
)

// Load builds the configuration from defaults, the optional config file in
// the base directory, and finally environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if home := os.Getenv(EnvHome); home != "" {
		cfg.BaseDir = home
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	if path, ok := findConfigFile(cfg.BaseDir); ok {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
		if err := fc.apply(cfg); err != nil {
			return nil, fmt.Errorf("apply config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		cfg.LLM.OpenAIAPIKey = v
	}
	if v := os.Getenv(EnvAnthropic); v != "" {
		cfg.LLM.AnthropicAPIKey = v
	}
	if v := os.Getenv(EnvGeminiKey); v != "" {
		cfg.LLM.GeminiAPIKey = v
	}
	if v := os.Getenv(EnvMoonshotKey); v != "" {
		cfg.LLM.MoonshotAPIKey = v
	}
	if v := os.Getenv(EnvCatalogURL); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv(EnvUpdateURL); v != "" {
		cfg.UpdateURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebug)); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = on
		}
	}
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}
