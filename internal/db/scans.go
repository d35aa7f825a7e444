package db

import (
	"time"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// StartScan records the start of a scan and returns its record.
func (db *DB) StartScan(root string) (*models.ScanRecord, error) {
	rec := &models.ScanRecord{
		Root:      root,
		StartedAt: time.Now(),
		Status:    models.ScanRunning,
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// FinishScan marks a scan completed, or failed when scanErr is non-nil.
func (db *DB) FinishScan(id uint, filesFound int, totalSize int64, scanErr error) error {
	now := time.Now()
	updates := map[string]interface{}{
		"completed_at": now,
		"files_found":  filesFound,
		"total_size":   totalSize,
		"status":       models.ScanCompleted,
		"error":        "",
	}
	if scanErr != nil {
		updates["status"] = models.ScanFailed
		updates["error"] = truncate(scanErr.Error(), 1000)
	}
	return db.Model(&models.ScanRecord{}).Where("id = ?", id).Updates(updates).Error
}

// RecentScans returns the newest scans first.
func (db *DB) RecentScans(limit int) ([]models.ScanRecord, error) {
	var scans []models.ScanRecord
	q := db.Order("started_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&scans).Error
	return scans, err
}

// LastCompletedScan returns the newest completed scan of root, or nil.
func (db *DB) LastCompletedScan(root string) (*models.ScanRecord, error) {
	var scans []models.ScanRecord
	err := db.Where("root = ? AND status = ?", root, models.ScanCompleted).
		Order("completed_at DESC").
		Limit(1).
		Find(&scans).Error
	if err != nil || len(scans) == 0 {
		return nil, err
	}
	return &scans[0], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
