package backend

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/hash"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// progressEvery is how many entries pass between progress callbacks.
const progressEvery = 256

// ProgressFunc receives scan progress. It is called from the scanning goroutine.
type ProgressFunc func(models.ScanProgress)

// ScanDirectory walks path and returns one record per entry, root included.
func (b *Backend) ScanDirectory(ctx context.Context, path string) ([]models.FileRecord, error) {
	return b.ScanWithProgress(ctx, path, nil)
}

// ScanWithProgress is ScanDirectory with progress reporting. The scan is
// recorded in the scan history when a database is attached.
func (b *Backend) ScanWithProgress(ctx context.Context, path string, progress ProgressFunc) ([]models.FileRecord, error) {
	const op = "scan_directory"

	root := b.ExpandHome(path)
	info, err := os.Stat(root)
	if err != nil {
		return nil, gateway.Errorf(op, "Path does not exist: %s", path)
	}
	if !info.IsDir() {
		return nil, gateway.Errorf(op, "Not a directory: %s", path)
	}

	var scanID uint
	if b.db != nil {
		if rec, err := b.db.StartScan(root); err == nil {
			scanID = rec.ID
		} else {
			log.Debugf("record scan start: %v", err)
		}
	}

	var (
		records []models.FileRecord
		p       models.ScanProgress
	)
	walkErr := filepath.WalkDir(root, func(pth string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rec := recordFor(pth, info)
		records = append(records, rec)

		p.ScannedFiles++
		p.TotalFiles = p.ScannedFiles
		p.BytesScanned += rec.Size
		p.CurrentPath = pth
		if progress != nil && p.ScannedFiles%progressEvery == 0 {
			progress(p)
		}
		return nil
	})

	if progress != nil {
		progress(p)
	}

	if scanID != 0 {
		if err := b.db.FinishScan(scanID, len(records), p.BytesScanned, walkErr); err != nil {
			log.Debugf("record scan finish: %v", err)
		}
	}
	if walkErr != nil {
		return nil, gateway.Wrap(op, walkErr)
	}
	return records, nil
}

func recordFor(path string, info fs.FileInfo) models.FileRecord {
	isFile := info.Mode().IsRegular()
	rec := models.FileRecord{
		ID:          uuid.NewString(),
		Path:        path,
		Name:        info.Name(),
		ModifiedAt:  info.ModTime().Unix(),
		IsDirectory: info.IsDir(),
	}
	if isFile {
		rec.Size = info.Size()
		rec.Extension = models.FileExtension(info.Name())
		rec.Category = models.CategorizeExtension(rec.Extension)
	}
	return rec
}

// FileInfo returns a single record for path, hashing regular files.
func (b *Backend) FileInfo(ctx context.Context, path string) (*models.FileRecord, error) {
	const op = "get_file_info"

	p := b.ExpandHome(path)
	info, err := os.Stat(p)
	if err != nil {
		return nil, gateway.Errorf(op, "Path does not exist: %s", path)
	}
	rec := recordFor(p, info)
	if info.Mode().IsRegular() {
		if sum, err := hash.File(ctx, p); err == nil {
			rec.Hash = sum
		}
	}
	return &rec, nil
}

// FindDuplicates groups non-empty files with identical content. Only files
// that share a size with another file are hashed. Groups are ordered by
// wasted bytes, largest first.
func (b *Backend) FindDuplicates(ctx context.Context, files []models.FileRecord) ([][]models.FileRecord, error) {
	bySize := make(map[int64][]models.FileRecord)
	for _, f := range files {
		if f.IsDirectory || f.Size <= 0 {
			continue
		}
		bySize[f.Size] = append(bySize[f.Size], f)
	}

	byHash := make(map[string][]models.FileRecord)
	var order []string
	for _, group := range bySize {
		if len(group) < 2 {
			continue
		}
		for _, f := range group {
			sum, err := hash.File(ctx, f.Path)
			if err != nil {
				if ctx.Err() != nil {
					return nil, gateway.Wrap("find_duplicates", ctx.Err())
				}
				continue
			}
			f.Hash = sum
			if _, seen := byHash[sum]; !seen {
				order = append(order, sum)
			}
			byHash[sum] = append(byHash[sum], f)
		}
	}

	var out [][]models.FileRecord
	for _, sum := range order {
		if g := byHash[sum]; len(g) > 1 {
			sort.Slice(g, func(i, j int) bool { return g[i].Path < g[j].Path })
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return wasted(out[i]) > wasted(out[j])
	})
	return out, nil
}

func wasted(group []models.FileRecord) int64 {
	if len(group) == 0 {
		return 0
	}
	return group[0].Size * int64(len(group)-1)
}

// ExpandHome replaces a leading "~" with the home directory.
func (b *Backend) ExpandHome(p string) string {
	if p == "~" {
		return b.home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(b.home, rest)
	}
	return p
}
