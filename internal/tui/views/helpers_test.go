package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 5, "abcd…"},
		{"one", "abcdef", 1, "…"},
		{"zero", "abc", 0, ""},
		{"multibyte", "ßßßßß", 3, "ßß…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.n))
		})
	}
}

func TestCheckbox(t *testing.T) {
	assert.Equal(t, "[x]", Checkbox(true))
	assert.Equal(t, "[ ]", Checkbox(false))
}

func TestVisibleWindow(t *testing.T) {
	start, end := visibleWindow(5, 3, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = visibleWindow(100, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = visibleWindow(100, 50, 10)
	assert.Equal(t, 45, start)
	assert.Equal(t, 55, end)

	start, end = visibleWindow(100, 99, 10)
	assert.Equal(t, 90, start)
	assert.Equal(t, 100, end)
}

func TestProgressBar(t *testing.T) {
	assert.Empty(t, ProgressBar(50, 0, "#fff"))
	assert.Equal(t, 10, len([]rune(stripANSI(ProgressBar(150, 10, "#fff")))))
	assert.Equal(t, 10, len([]rune(stripANSI(ProgressBar(-5, 10, "#fff")))))
}
