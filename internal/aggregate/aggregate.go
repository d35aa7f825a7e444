// Package aggregate derives totals and percentages from store snapshots.
// Nothing here is cached; every value is recomputed from the snapshot it
// is given.
package aggregate

import (
	"math"

	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
)

// TotalScannedSize sums the sizes of the scanned files.
func TotalScannedSize(files []models.FileRecord) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// SelectedSize sums the sizes of the selected files that are still present.
func SelectedSize(st *store.State) int64 {
	return TotalScannedSize(st.SelectedRecords())
}

// ReclaimableSpace sums the reclaimable estimates of the recommendations.
func ReclaimableSpace(recs []models.CleanupRecommendation) uint64 {
	var total uint64
	for _, r := range recs {
		total += r.SpaceReclaimable
	}
	return total
}

// UnusedContainerBytes is the build cache plus unused images and volumes.
// A nil inventory counts as zero.
func UnusedContainerBytes(inv *models.ContainerInventory) uint64 {
	if inv == nil {
		return 0
	}
	return inv.UnusedBytes()
}

// PackageCacheBytes sums package cache sizes.
func PackageCacheBytes(caches []models.PackageCacheEntry) uint64 {
	var total uint64
	for _, c := range caches {
		total += c.Size
	}
	return total
}

// TotalReclaimable is the recommendation estimate plus unused container
// bytes plus package cache bytes, each contributing only when present.
func TotalReclaimable(st *store.State) uint64 {
	return ReclaimableSpace(st.CleanupRecommendations) +
		UnusedContainerBytes(st.DockerInfo) +
		PackageCacheBytes(st.PackageCaches)
}

// Percent returns used/total as a rounded percentage clamped to [0, 100].
// A zero total yields 0.
func Percent(used, total uint64) int {
	if total == 0 {
		return 0
	}
	p := math.Round(float64(used) / float64(total) * 100)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return int(p)
	}
}

// DiskPercent is the disk usage percentage of a snapshot, 0 when absent.
func DiskPercent(info *models.SystemSnapshot) int {
	if info == nil {
		return 0
	}
	return Percent(info.DiskUsed, info.DiskTotal)
}

// MemoryPercent is the memory usage percentage of a snapshot, 0 when absent.
func MemoryPercent(info *models.SystemSnapshot) int {
	if info == nil {
		return 0
	}
	return Percent(info.MemoryUsed, info.MemoryTotal)
}

// Level grades a usage percentage for display.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// UsageLevel is critical above 90 percent and warning above 75.
func UsageLevel(percent int) Level {
	switch {
	case percent > 90:
		return LevelCritical
	case percent > 75:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// Severity is the presentation tier of a risk level.
type Severity string

const (
	SeverityFavorable  Severity = "favorable"
	SeverityCautionary Severity = "cautionary"
	SeverityBlocking   Severity = "blocking"
)

// SeverityFor maps low, medium and high risk to favorable, cautionary and
// blocking. Unknown levels are treated as cautionary.
func SeverityFor(risk models.RiskLevel) Severity {
	switch risk {
	case models.RiskLow:
		return SeverityFavorable
	case models.RiskHigh:
		return SeverityBlocking
	default:
		return SeverityCautionary
	}
}

// LastModified returns the newest modification time among the files as
// unix seconds, and false when there are none.
func LastModified(files []models.FileRecord) (int64, bool) {
	if len(files) == 0 {
		return 0, false
	}
	newest := files[0].ModifiedAt
	for _, f := range files[1:] {
		if f.ModifiedAt > newest {
			newest = f.ModifiedAt
		}
	}
	return newest, true
}

// Summary bundles the aggregates the view surfaces display together.
type Summary struct {
	FileCount        int    `json:"file_count"`
	TotalSize        int64  `json:"total_size"`
	SelectedCount    int    `json:"selected_count"`
	SelectedSize     int64  `json:"selected_size"`
	Reclaimable      uint64 `json:"reclaimable"`
	TotalReclaimable uint64 `json:"total_reclaimable"`
	DiskPercent      int    `json:"disk_percent"`
	MemoryPercent    int    `json:"memory_percent"`
	DiskLevel        Level  `json:"disk_level"`
	LastModified     int64  `json:"last_modified,omitempty"`
}

// Summarize computes every aggregate from one snapshot.
func Summarize(st *store.State) Summary {
	s := Summary{
		FileCount:        len(st.ScannedFiles),
		TotalSize:        TotalScannedSize(st.ScannedFiles),
		SelectedCount:    st.SelectedFiles.Len(),
		SelectedSize:     SelectedSize(st),
		Reclaimable:      ReclaimableSpace(st.CleanupRecommendations),
		TotalReclaimable: TotalReclaimable(st),
		DiskPercent:      DiskPercent(st.SystemInfo),
		MemoryPercent:    MemoryPercent(st.SystemInfo),
	}
	s.DiskLevel = UsageLevel(s.DiskPercent)
	s.LastModified, _ = LastModified(st.ScannedFiles)
	return s
}
