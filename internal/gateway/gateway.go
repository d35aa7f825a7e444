// Package gateway declares the operations the CleanOS front ends need
// from a backend: host inspection, scanning, cleanup, AI access and
// persistence. The local implementation lives in internal/backend.
package gateway

import (
	"context"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// Gateway is the full backend surface.
type Gateway interface {
	// Files
	ScanDirectory(ctx context.Context, path string) ([]models.FileRecord, error)
	FileInfo(ctx context.Context, path string) (*models.FileRecord, error)
	FindDuplicates(ctx context.Context, files []models.FileRecord) ([][]models.FileRecord, error)

	// Host
	SystemInfo(ctx context.Context) (*models.SystemSnapshot, error)
	StorageBreakdown(ctx context.Context) (*models.StorageBreakdown, error)
	LogInfo(ctx context.Context) (*models.LogInfo, error)

	// Containers
	DockerInfo(ctx context.Context) (*models.ContainerInventory, error)
	CleanDocker(ctx context.Context, target DockerTarget) (*models.CleanupResult, error)

	// Caches
	PackageCaches(ctx context.Context) ([]models.PackageCacheEntry, error)
	CleanPackageCache(ctx context.Context, manager string) (*models.CleanupResult, error)
	BrowserCaches(ctx context.Context) ([]models.PackageCacheEntry, error)
	CleanBrowserCache(ctx context.Context, browser string) (*models.CleanupResult, error)
	CleanLogs(ctx context.Context) (*models.CleanupResult, error)
	CleanupRecommendations(ctx context.Context) ([]models.CleanupRecommendation, error)

	// AI
	FetchModelCatalog(ctx context.Context) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	TestConnection(ctx context.Context, provider, apiKey, model string) error
	AnalyzeFiles(ctx context.Context, provider string, paths []string) ([]models.FileRecord, error)

	// Credentials
	StoreAPIKey(ctx context.Context, provider, key string) error
	APIKey(ctx context.Context, provider string) (string, error)
	DeleteAPIKey(ctx context.Context, provider string) error
	HasAPIKey(ctx context.Context, provider string) (bool, error)

	// Settings
	Setting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error

	// Updates
	CheckForUpdates(ctx context.Context) (*models.UpdateInfo, error)
	CurrentVersion() string
}

// DockerTarget selects what CleanDocker prunes.
type DockerTarget string

const (
	DockerImages     DockerTarget = "images"
	DockerContainers DockerTarget = "containers"
	DockerVolumes    DockerTarget = "volumes"
	DockerBuildCache DockerTarget = "build-cache"
	DockerAll        DockerTarget = "all"
)

// ParseDockerTarget validates a target name.
func ParseDockerTarget(s string) (DockerTarget, bool) {
	switch t := DockerTarget(s); t {
	case DockerImages, DockerContainers, DockerVolumes, DockerBuildCache, DockerAll:
		return t, true
	}
	return "", false
}

// ChatRequest is one user turn sent to a provider.
type ChatRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Message  string `json:"message"`
	// History holds earlier turns, oldest first.
	History []ChatTurn `json:"history,omitempty"`
}

// ChatTurn is one prior exchange.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
