package backend

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// storageFolder is a well-known location included in the breakdown.
type storageFolder struct {
	name   string
	path   string
	system bool // path is absolute on the host, not under home
}

var storageFolders = []storageFolder{
	{name: "Documents", path: "Documents"},
	{name: "Downloads", path: "Downloads"},
	{name: "Pictures", path: "Pictures"},
	{name: "Videos", path: "Videos"},
	{name: "Music", path: "Music"},
	{name: "Cache", path: ".cache"},
	{name: "Local Data", path: ".local/share"},
	{name: "System Logs", path: "/var/log", system: true},
	{name: "Temp", path: "/tmp", system: true},
}

func (b *Backend) folderPath(f storageFolder) string {
	if f.system {
		return b.hostPath(f.path)
	}
	return filepath.Join(b.home, f.path)
}

// StorageBreakdown sizes the well-known folders that exist, largest first.
// Totals come from the root filesystem.
func (b *Backend) StorageBreakdown(ctx context.Context) (*models.StorageBreakdown, error) {
	const op = "get_storage_breakdown"

	out := &models.StorageBreakdown{Categories: []models.StorageCategory{}}
	for _, f := range storageFolders {
		p := b.folderPath(f)
		if !exists(p) {
			continue
		}
		size, count, err := dirSize(ctx, p)
		if err != nil {
			return nil, gateway.Wrap(op, err)
		}
		out.Categories = append(out.Categories, models.StorageCategory{
			Name:      f.name,
			Size:      size,
			Path:      p,
			FileCount: count,
		})
	}
	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].Size > out.Categories[j].Size
	})

	snap := &models.SystemSnapshot{}
	if err := b.fillPlatform(snap); err == nil {
		out.TotalUsed = snap.DiskUsed
		out.TotalAvailable = snap.DiskAvailable
	}
	return out, nil
}

// LogInfo reports the size of the system log directory.
func (b *Backend) LogInfo(ctx context.Context) (*models.LogInfo, error) {
	p := b.hostPath("/var/log")
	info := &models.LogInfo{Name: "System Logs", Path: p}
	if !exists(p) {
		return info, nil
	}
	size, count, err := dirSize(ctx, p)
	if err != nil {
		return nil, gateway.Wrap("get_log_info", err)
	}
	info.Size = size
	info.FileCount = count
	return info, nil
}

// dirSize sums regular file sizes under root. Unreadable entries are
// skipped; symlinks are not followed. Only cancellation is an error.
func dirSize(ctx context.Context, root string) (size, count uint64, err error) {
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		size += uint64(info.Size())
		count++
		return nil
	})
	if walkErr != nil && ctx.Err() != nil {
		return 0, 0, walkErr
	}
	return size, count, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
