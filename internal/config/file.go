package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Zero values mean "unspecified" and
// leave the defaults in place. Durations use Go syntax ("30s", "1h").
type File struct {
	Debug   *bool       `json:"debug" yaml:"debug" toml:"debug"`
	Catalog CatalogFile `json:"catalog" yaml:"catalog" toml:"catalog"`
	LLM     LLMFile     `json:"llm" yaml:"llm" toml:"llm"`
	Refresh RefreshFile `json:"refresh" yaml:"refresh" toml:"refresh"`
	HTTP    HTTPFile    `json:"http" yaml:"http" toml:"http"`

	UpdateURL string `json:"update_url" yaml:"update_url" toml:"update_url"`
}

type CatalogFile struct {
	URL               string `json:"url" yaml:"url" toml:"url"`
	TTL               string `json:"ttl" yaml:"ttl" toml:"ttl"`
	RequestsPerMinute int    `json:"requests_per_minute" yaml:"requests_per_minute" toml:"requests_per_minute"`
}

type LLMFile struct {
	DefaultProvider string `json:"default_provider" yaml:"default_provider" toml:"default_provider"`
	DefaultModel    string `json:"default_model" yaml:"default_model" toml:"default_model"`
}

type RefreshFile struct {
	SystemInterval string `json:"system_interval" yaml:"system_interval" toml:"system_interval"`
}

type HTTPFile struct {
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// LoadFile reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadFile(path string) (File, error) {
	var fc File
	if path == "" {
		return fc, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, err
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, err
		}
	default:
		return fc, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return fc, nil
}

func (fc File) apply(cfg *Config) error {
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}

	if fc.Catalog.URL != "" {
		cfg.Catalog.URL = fc.Catalog.URL
	}
	if fc.Catalog.TTL != "" {
		d, err := time.ParseDuration(fc.Catalog.TTL)
		if err != nil {
			return fmt.Errorf("catalog.ttl: %w", err)
		}
		if d > 0 {
			cfg.Catalog.TTL = d
		}
	}
	if fc.Catalog.RequestsPerMinute > 0 {
		cfg.Catalog.RequestsPerMinute = fc.Catalog.RequestsPerMinute
	}

	if fc.LLM.DefaultProvider != "" {
		cfg.LLM.DefaultProvider = fc.LLM.DefaultProvider
	}
	if fc.LLM.DefaultModel != "" {
		cfg.LLM.DefaultModel = fc.LLM.DefaultModel
	}

	if fc.Refresh.SystemInterval != "" {
		d, err := time.ParseDuration(fc.Refresh.SystemInterval)
		if err != nil {
			return fmt.Errorf("refresh.system_interval: %w", err)
		}
		if d < minSystemRefreshInterval {
			d = minSystemRefreshInterval
		}
		cfg.Refresh.SystemInterval = d
	}

	if fc.HTTP.Addr != "" {
		cfg.HTTP.Addr = fc.HTTP.Addr
	}
	if len(fc.HTTP.CORSOrigins) > 0 {
		cfg.HTTP.CORSOrigins = fc.HTTP.CORSOrigins
	}
	if fc.UpdateURL != "" {
		cfg.UpdateURL = fc.UpdateURL
	}
	return nil
}
