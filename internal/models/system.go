package models

// SystemSnapshot is a point-in-time view of host resources.
// It is replaced wholesale on every refresh, never patched.
type SystemSnapshot struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Kernel          string `json:"kernel"`
	MemoryTotal     uint64 `json:"memory_total"`
	MemoryUsed      uint64 `json:"memory_used"`
	MemoryAvailable uint64 `json:"memory_available"`
	DiskTotal       uint64 `json:"disk_total"`
	DiskUsed        uint64 `json:"disk_used"`
	DiskAvailable   uint64 `json:"disk_available"`
}

// StorageCategory is one named bucket of a StorageBreakdown.
type StorageCategory struct {
	Name      string `json:"name"`
	Size      uint64 `json:"size"`
	Path      string `json:"path"`
	FileCount uint64 `json:"file_count"`
}

// StorageBreakdown groups disk usage by category.
// The sum of category sizes is not required to match TotalUsed.
type StorageBreakdown struct {
	Categories     []StorageCategory `json:"categories"`
	TotalUsed      uint64            `json:"total_used"`
	TotalAvailable uint64            `json:"total_available"`
}

// CategorySize returns the summed size of all categories.
func (b StorageBreakdown) CategorySize() uint64 {
	var total uint64
	for _, c := range b.Categories {
		total += c.Size
	}
	return total
}

// LogInfo describes the system log footprint.
type LogInfo struct {
	Name      string `json:"name"`
	Size      uint64 `json:"size"`
	Path      string `json:"path"`
	FileCount uint64 `json:"file_count"`
}

// UpdateInfo describes an available application update.
type UpdateInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}
