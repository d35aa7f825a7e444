package backend

import (
	"context"
	"path/filepath"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// cacheLocation is a named cache directory.
type cacheLocation struct {
	name   string
	path   string
	system bool
}

var packageCaches = []cacheLocation{
	{name: "npm", path: ".npm"},
	{name: "pip", path: ".cache/pip"},
	{name: "cargo", path: ".cargo/registry"},
	{name: "dnf", path: "/var/cache/dnf", system: true},
}

var browserCaches = []cacheLocation{
	{name: "Google Chrome", path: ".cache/google-chrome"},
	{name: "Brave", path: ".cache/BraveSoftware"},
	{name: "Firefox", path: ".mozilla/firefox"},
	{name: "Chromium", path: ".cache/chromium"},
}

func (b *Backend) cacheEntries(ctx context.Context, locs []cacheLocation) ([]models.PackageCacheEntry, error) {
	out := make([]models.PackageCacheEntry, 0, len(locs))
	for _, l := range locs {
		p := filepath.Join(b.home, l.path)
		if l.system {
			p = b.hostPath(l.path)
		}
		e := models.PackageCacheEntry{Manager: l.name, Path: p, Exists: exists(p)}
		if e.Exists {
			size, _, err := dirSize(ctx, p)
			if err != nil {
				return nil, err
			}
			e.Size = size
		}
		out = append(out, e)
	}
	return out, nil
}

// PackageCaches reports the npm, pip, cargo and dnf caches, present or not.
func (b *Backend) PackageCaches(ctx context.Context) ([]models.PackageCacheEntry, error) {
	out, err := b.cacheEntries(ctx, packageCaches)
	return out, gateway.Wrap("get_package_caches", err)
}

// BrowserCaches reports the known browser cache directories, present or not.
func (b *Backend) BrowserCaches(ctx context.Context) ([]models.PackageCacheEntry, error) {
	out, err := b.cacheEntries(ctx, browserCaches)
	return out, gateway.Wrap("get_browser_caches", err)
}

// CleanPackageCache is not performed by the local backend.
func (b *Backend) CleanPackageCache(ctx context.Context, manager string) (*models.CleanupResult, error) {
	return nil, gateway.Unsupported("clean_package_cache")
}

// CleanBrowserCache is not performed by the local backend.
func (b *Backend) CleanBrowserCache(ctx context.Context, browser string) (*models.CleanupResult, error) {
	return nil, gateway.Unsupported("clean_browser_cache")
}

// CleanLogs is not performed by the local backend.
func (b *Backend) CleanLogs(ctx context.Context) (*models.CleanupResult, error) {
	return nil, gateway.Unsupported("clean_logs")
}
