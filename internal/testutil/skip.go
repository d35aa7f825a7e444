// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// EnvRunAITests enables tests that call real AI providers.
const EnvRunAITests = "CLEANOS_RUN_AI_TESTS"

// SkipAITests skips the test unless EnvRunAITests is set.
//
// Run them with: CLEANOS_RUN_AI_TESTS=1 go test ./internal/llm/...
func SkipAITests(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvRunAITests) == "" {
		t.Skip("Skipping AI test (set " + EnvRunAITests + "=1 to run)")
	}
}

// AIKey returns the key in envVar for a live provider test, skipping the
// test when AI tests are off or the key is missing.
func AIKey(t *testing.T, envVar string) string {
	t.Helper()
	SkipAITests(t)
	key := os.Getenv(envVar)
	if key == "" {
		t.Skip("Skipping AI test (" + envVar + " is not set)")
	}
	return key
}
