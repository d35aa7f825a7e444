package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEnv sets environment variables for the duration of the test.
func withEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

// isolate points the base dir at a temp dir and clears provider keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	withEnv(t, map[string]string{
		EnvHome:        dir,
		EnvOpenAIKey:   "",
		EnvAnthropic:   "",
		EnvGeminiKey:   "",
		EnvMoonshotKey: "",
		EnvCatalogURL:  "",
		EnvHTTPAddr:    "",
		EnvDebug:       "",
		EnvUpdateURL:   "",
	})
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, time.Hour, cfg.Catalog.TTL)
	assert.Equal(t, 30*time.Second, cfg.Refresh.SystemInterval)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTP.Addr)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.LLM.DefaultProvider) // Auto-detect
	assert.Contains(t, cfg.BaseDir, AppDirName)
}

func TestLoad_FromEnv(t *testing.T) {
	dir := isolate(t)
	withEnv(t, map[string]string{
		EnvOpenAIKey:   "sk-openai-test",
		EnvAnthropic:   "sk-ant-test",
		EnvGeminiKey:   "AIza-test",
		EnvMoonshotKey: "sk-moon-test",
		EnvCatalogURL:  "http://localhost:9999/models",
		EnvHTTPAddr:    ":8080",
		EnvDebug:       "true",
		EnvUpdateURL:   "https://releases.test/latest.json",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, "sk-openai-test", cfg.LLM.KeyFor("openai"))
	assert.Equal(t, "sk-ant-test", cfg.LLM.KeyFor("claude"))
	assert.Equal(t, "AIza-test", cfg.LLM.KeyFor("gemini"))
	assert.Equal(t, "sk-moon-test", cfg.LLM.KeyFor("kimi"))
	assert.Empty(t, cfg.LLM.KeyFor("mistral"))
	assert.Equal(t, "http://localhost:9999/models", cfg.Catalog.URL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "https://releases.test/latest.json", cfg.UpdateURL)
	assert.True(t, cfg.Debug)
}

func TestLoad_BadDebugValueIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDebug, "loud")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	content := `
debug: true
catalog:
  ttl: 10m
  requests_per_minute: 2
llm:
  default_provider: claude
refresh:
  system_interval: 5s
http:
  addr: ":9000"
  cors_origins: ["http://example.test"]
update_url: https://releases.test/manifest.json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.TTL)
	assert.Equal(t, 2, cfg.Catalog.RequestsPerMinute)
	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, "claude", cfg.LLM.DefaultProvider)
	assert.Equal(t, 5*time.Second, cfg.Refresh.SystemInterval)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"http://example.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "https://releases.test/manifest.json", cfg.UpdateURL)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetPaths(cfg).Config)
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := isolate(t)
	content := `
[catalog]
url = "http://catalog.test/models"

[refresh]
system_interval = "10ms"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.test/models", cfg.Catalog.URL)
	assert.Equal(t, time.Second, cfg.Refresh.SystemInterval)
}

func TestLoad_JSONFile_EnvWins(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvHTTPAddr, ":1111")
	content := `{"http": {"addr": ":2222"}, "debug": false}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":1111", cfg.HTTP.Addr)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("catalog:\n  ttl: soon\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.ttl")
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)

	_, err = LoadFile("")
	require.Error(t, err)
}

func TestGetPaths(t *testing.T) {
	cfg := &Config{BaseDir: t.TempDir()}
	p := GetPaths(cfg)

	assert.Equal(t, filepath.Join(cfg.BaseDir, "cleanos.db"), p.Database)
	assert.Equal(t, cfg.BaseDir, p.Logs)
	assert.Equal(t, filepath.Join(cfg.BaseDir, "config.yaml"), p.Config)
}
