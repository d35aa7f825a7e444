package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleanos-ai/cleanos/internal/gateway"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		expected string
	}{
		{"config", "config file not found", "config_error"},
		{"configuration", "configuration error occurred", "config_error"},
		{"database", "database connection failed", "database_error"},
		{"db", "db error occurred", "database_error"},
		{"network", "network unreachable", "network_error"},
		{"timeout", "request timeout", "network_error"},
		{"permission", "permission denied", "permission_error"},
		{"access denied", "access denied to /var/log", "permission_error"},
		{"not found", "provider not found", "not_found_error"},
		{"does not exist", "directory does not exist", "not_found_error"},
		{"invalid", "invalid docker target: foo", "validation_error"},
		{"parse", "failed to parse JSON", "validation_error"},
		{"unsupported", "clean_logs: operation not supported", "unsupported_error"},
		{"unknown", "the sky is falling", "unknown_error"},
		{"case insensitive", "NETWORK timeout", "network_error"},
		{"config wins over db", "config database error", "config_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyError(errors.New(tt.errMsg)))
		})
	}
}

func TestClassifyError_GatewayUnsupported(t *testing.T) {
	assert.Equal(t, "unsupported_error", classifyError(gateway.Unsupported("clean_docker")))
}

func TestContainsAny(t *testing.T) {
	assert.False(t, containsAny("hello world", "foo", "bar"))
	assert.True(t, containsAny("hello world", "foo", "world"))
	// only the haystack is lowercased
	assert.False(t, containsAny("Hello World", "HELLO"))
	assert.True(t, containsAny("Hello World", "hello"))
}

func TestTrackCLIError_Nil(t *testing.T) {
	assert.Nil(t, trackCLIError("test-cmd", nil))
}

func TestTrackCLIError_ReturnsErr(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, trackCLIError("test-cmd", err))
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "cleanos", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, expected := range []string{
		"scan", "sysinfo", "docker", "caches", "models", "providers",
		"dirs", "key", "chat", "serve", "update",
	} {
		assert.Contains(t, names, expected, "Missing subcommand: %s", expected)
	}
}
