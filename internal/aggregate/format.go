package aggregate

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// FormatBytes renders a byte count with IEC units, e.g. "1.5 GiB".
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// FormatSize is FormatBytes for signed sizes; negatives render as 0 B.
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatContextLength abbreviates a token count: 1048576 is "1.0M",
// 128000 is "128K", smaller values are printed as is.
func FormatContextLength(tokens int) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%dK", int(math.Round(float64(tokens)/1_000)))
	default:
		return fmt.Sprintf("%d", tokens)
	}
}

// ChartColors is the palette cycled through by storage charts.
var ChartColors = []string{
	"#3b82f6", "#8b5cf6", "#10b981", "#f59e0b",
	"#ef4444", "#ec4899", "#06b6d4", "#84cc16", "#6b7280",
}

// ChartSlice is one non-empty storage category with its share and colour.
type ChartSlice struct {
	Name    string `json:"name"`
	Size    uint64 `json:"size"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}

// StorageChart turns a breakdown into chart slices. Empty categories are
// dropped; shares are of the category sum, not of the disk total.
func StorageChart(b *models.StorageBreakdown) []ChartSlice {
	if b == nil {
		return nil
	}
	sum := b.CategorySize()
	var out []ChartSlice
	for i, c := range b.Categories {
		if c.Size == 0 {
			continue
		}
		out = append(out, ChartSlice{
			Name:    c.Name,
			Size:    c.Size,
			Percent: Percent(c.Size, sum),
			Color:   ChartColors[i%len(ChartColors)],
		})
	}
	return out
}
