package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// GetSetting retrieves a setting value. A missing key returns "" and no error.
func (db *DB) GetSetting(key string) (string, error) {
	value, _, err := db.LookupSetting(key)
	return value, err
}

// LookupSetting retrieves a setting value and reports whether it exists.
func (db *DB) LookupSetting(key string) (string, bool, error) {
	var s models.Setting
	err := db.First(&s, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.Value, true, nil
}

// SetSetting sets a setting value.
func (db *DB) SetSetting(key, value string) error {
	s := models.Setting{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

// GetAllSettings retrieves every setting.
func (db *DB) GetAllSettings() (map[string]string, error) {
	var settings []models.Setting
	if err := db.Find(&settings).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// DeleteSetting deletes a setting.
func (db *DB) DeleteSetting(key string) error {
	return db.Delete(&models.Setting{}, "key = ?", key).Error
}

// GetOrCreateTrackingID returns the persistent tracking ID, creating one if it doesn't exist.
// On any error, it falls back to generating a per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	id, err := db.GetSetting(models.SettingTrackingID)
	if err != nil {
		return generateSessionID()
	}
	if id != "" {
		return id
	}

	id = generateSessionID()
	// Even if save fails, the generated ID serves this session.
	_ = db.SetSetting(models.SettingTrackingID, id)
	return id
}

// generateSessionID creates a new UUID for session-based tracking.
func generateSessionID() string {
	return uuid.New().String()
}
