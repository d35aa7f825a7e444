package models

// RiskLevel grades how safe a cleanup recommendation is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Recommendation categories produced by the backend.
const (
	RecommendPackageCache = "package_cache"
	RecommendBrowserCache = "browser_cache"
	RecommendLogs         = "logs"
	RecommendDocker       = "docker"
)

// PackageCacheEntry is a package manager or browser cache on disk.
type PackageCacheEntry struct {
	Manager string `json:"manager"`
	Path    string `json:"path"`
	Size    uint64 `json:"size"`
	Exists  bool   `json:"exists"`
}

// CleanupItem is one path inside a recommendation.
type CleanupItem struct {
	Path        string `json:"path"`
	Size        uint64 `json:"size"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

// CleanupRecommendation is produced by the backend and read-only here.
type CleanupRecommendation struct {
	ID               string        `json:"id"`
	Category         string        `json:"category"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	SpaceReclaimable uint64        `json:"space_reclaimable"`
	RiskLevel        RiskLevel     `json:"risk_level"`
	Items            []CleanupItem `json:"items"`
}

// CleanupResult is returned by cleanup operations.
type CleanupResult struct {
	Success    bool   `json:"success"`
	SpaceFreed uint64 `json:"space_freed"`
	Message    string `json:"message"`
}
