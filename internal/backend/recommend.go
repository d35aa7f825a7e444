package backend

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/hash"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// logThreshold is the log directory size above which logs are suggested.
const logThreshold = 100 * 1000 * 1000

// CleanupRecommendations derives suggestions from caches, logs and
// unused docker data. Sources that cannot be read are skipped. The result
// is ordered by reclaimable space, largest first.
func (b *Backend) CleanupRecommendations(ctx context.Context) ([]models.CleanupRecommendation, error) {
	var recs []models.CleanupRecommendation

	if caches, err := b.PackageCaches(ctx); err == nil {
		recs = appendRec(recs, cacheRecommendation(models.RecommendPackageCache, "Package manager caches",
			"Downloaded packages that the package managers can fetch again.", caches))
	} else if ctx.Err() == nil {
		log.Debugf("recommendations: package caches: %v", err)
	}

	if caches, err := b.BrowserCaches(ctx); err == nil {
		recs = appendRec(recs, cacheRecommendation(models.RecommendBrowserCache, "Browser caches",
			"Cached web content. Browsers rebuild it as you browse.", caches))
	} else if ctx.Err() == nil {
		log.Debugf("recommendations: browser caches: %v", err)
	}

	if info, err := b.LogInfo(ctx); err == nil && info.Size > logThreshold {
		recs = appendRec(recs, models.CleanupRecommendation{
			Category:         models.RecommendLogs,
			Title:            "System logs",
			Description:      fmt.Sprintf("%d log files. Old rotated logs are rarely needed.", info.FileCount),
			SpaceReclaimable: info.Size,
			RiskLevel:        models.RiskMedium,
			Items: []models.CleanupItem{{
				Path:        info.Path,
				Size:        info.Size,
				Description: info.Name,
			}},
		})
	}

	if inv, err := b.DockerInfo(ctx); err == nil {
		recs = appendRec(recs, dockerRecommendation(inv))
	}

	if err := ctx.Err(); err != nil {
		return nil, gateway.Wrap("get_cleanup_recommendations", err)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SpaceReclaimable > recs[j].SpaceReclaimable
	})
	if recs == nil {
		recs = []models.CleanupRecommendation{}
	}
	return recs, nil
}

// appendRec keeps only recommendations that would free something.
func appendRec(recs []models.CleanupRecommendation, r models.CleanupRecommendation) []models.CleanupRecommendation {
	if r.SpaceReclaimable == 0 {
		return recs
	}
	r.ID = hash.TruncatedSHA256(r.Category)
	return append(recs, r)
}

func cacheRecommendation(category, title, desc string, caches []models.PackageCacheEntry) models.CleanupRecommendation {
	r := models.CleanupRecommendation{
		Category:    category,
		Title:       title,
		Description: desc,
		RiskLevel:   models.RiskLow,
	}
	for _, c := range caches {
		if !c.Exists || c.Size == 0 {
			continue
		}
		r.SpaceReclaimable += c.Size
		r.Items = append(r.Items, models.CleanupItem{
			Path:        c.Path,
			Size:        c.Size,
			Description: c.Manager,
			Selected:    true,
		})
	}
	return r
}

func dockerRecommendation(inv *models.ContainerInventory) models.CleanupRecommendation {
	r := models.CleanupRecommendation{
		Category:    models.RecommendDocker,
		Title:       "Unused Docker data",
		Description: "Images and volumes no container uses, plus the build cache.",
		RiskLevel:   models.RiskMedium,
	}
	for _, img := range inv.Images {
		if img.InUse || img.Size == 0 {
			continue
		}
		r.Items = append(r.Items, models.CleanupItem{
			Path:        img.Repository + ":" + img.Tag,
			Size:        img.Size,
			Description: "image " + img.ID,
		})
	}
	for _, v := range inv.Volumes {
		if v.InUse || v.Size == 0 {
			continue
		}
		r.Items = append(r.Items, models.CleanupItem{
			Path:        v.Name,
			Size:        v.Size,
			Description: "volume",
		})
	}
	if inv.BuildCacheSize > 0 {
		r.Items = append(r.Items, models.CleanupItem{
			Path:        "build-cache",
			Size:        inv.BuildCacheSize,
			Description: "build cache " + humanize.Bytes(inv.BuildCacheSize),
			Selected:    true,
		})
	}
	r.SpaceReclaimable = inv.UnusedBytes()
	return r
}
