package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	Version, Commit, BuildDate = "v0.4.0", "0123456789abcdef", "2026-10-01"

	assert.Contains(t, Info(), "cleanos v0.4.0 (0123456)")
	assert.Contains(t, Full(), "Commit: 0123456789abcdef")
	assert.Equal(t, "v0.4.0", Short())
}
