package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/providers"
	"github.com/cleanos-ai/cleanos/internal/store"
)

// ErrScanInProgress is returned when a scan is requested while another
// one is running.
var ErrScanInProgress = errors.New("a scan is already in progress")

// InventorySource is the part of the gateway the loaders read.
type InventorySource interface {
	ScanDirectory(ctx context.Context, path string) ([]models.FileRecord, error)
	DockerInfo(ctx context.Context) (*models.ContainerInventory, error)
	PackageCaches(ctx context.Context) ([]models.PackageCacheEntry, error)
	CleanupRecommendations(ctx context.Context) ([]models.CleanupRecommendation, error)
	HasAPIKey(ctx context.Context, provider string) (bool, error)
}

// Inventory loads the on-demand store slices. On failure the store keeps
// its previous value.
type Inventory struct {
	src InventorySource
	st  *store.Store
}

// NewInventory creates the loaders.
func NewInventory(src InventorySource, st *store.Store) *Inventory {
	return &Inventory{src: src, st: st}
}

// LoadDocker replaces the container inventory.
func (i *Inventory) LoadDocker(ctx context.Context) error {
	inv, err := i.src.DockerInfo(ctx)
	if err != nil {
		return fmt.Errorf("load docker info: %w", err)
	}
	if inv != nil {
		i.st.SetDockerInfo(*inv)
	}
	return nil
}

// LoadPackageCaches replaces the package cache list.
func (i *Inventory) LoadPackageCaches(ctx context.Context) error {
	caches, err := i.src.PackageCaches(ctx)
	if err != nil {
		return fmt.Errorf("load package caches: %w", err)
	}
	i.st.SetPackageCaches(caches)
	return nil
}

// LoadRecommendations replaces the cleanup recommendations.
func (i *Inventory) LoadRecommendations(ctx context.Context) error {
	recs, err := i.src.CleanupRecommendations(ctx)
	if err != nil {
		return fmt.Errorf("load recommendations: %w", err)
	}
	i.st.SetCleanupRecommendations(recs)
	return nil
}

// LoadProviders rebuilds the provider status list, one entry per known
// provider. A provider counts as connected when it has a key. The
// currently selected model of each provider is kept.
func (i *Inventory) LoadProviders(ctx context.Context) error {
	prev := i.st.Snapshot()

	var errs []error
	statuses := make([]models.ProviderStatus, 0, len(providers.IDs()))
	for _, id := range providers.IDs() {
		status := models.ProviderStatus{ID: id, Model: providers.DefaultModel(id)}
		if old, ok := prev.Provider(id); ok && old.Model != "" {
			status.Model = old.Model
		}
		ok, err := i.src.HasAPIKey(ctx, id)
		if err != nil {
			status.Error = err.Error()
			errs = append(errs, fmt.Errorf("check key for %s: %w", id, err))
		}
		status.Connected = ok
		statuses = append(statuses, status)
	}
	i.st.SetProviders(statuses)
	return errors.Join(errs...)
}

// LoadAll runs every loader except scanning and returns their joined
// errors.
func (i *Inventory) LoadAll(ctx context.Context) error {
	return errors.Join(
		i.LoadDocker(ctx),
		i.LoadPackageCaches(ctx),
		i.LoadRecommendations(ctx),
		i.LoadProviders(ctx),
	)
}

// Scan scans dir and replaces the file collection, pruning selected ids
// that no longer exist. Only one scan runs at a time.
func (i *Inventory) Scan(ctx context.Context, dir string) ([]models.FileRecord, error) {
	if !i.st.TryStartScan() {
		return nil, ErrScanInProgress
	}
	defer func() {
		i.st.SetIsScanning(false)
		i.st.SetScanProgress(nil)
	}()

	i.st.SetScanProgress(&models.ScanProgress{CurrentPath: dir})
	files, err := i.src.ScanDirectory(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var bytes int64
	for _, f := range files {
		bytes += f.Size
	}
	i.st.SetScanProgress(&models.ScanProgress{
		TotalFiles:   len(files),
		ScannedFiles: len(files),
		CurrentPath:  dir,
		BytesScanned: bytes,
	})
	i.st.SetScannedFiles(files)
	i.st.PruneSelection()
	return files, nil
}
