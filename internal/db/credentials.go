package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// StoreAPIKey saves the key for a provider, replacing any previous key.
// Keys are stored as given; protecting them at rest is left to the host.
func (db *DB) StoreAPIKey(provider, key string) error {
	c := models.Credential{Provider: provider, Key: key}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"key", "updated_at"}),
	}).Create(&c).Error
}

// GetAPIKey returns the stored key for a provider, or "" when none is stored.
func (db *DB) GetAPIKey(provider string) (string, error) {
	var c models.Credential
	err := db.First(&c, "provider = ?", provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return c.Key, nil
}

// DeleteAPIKey removes a provider's key. Deleting a missing key is not an error.
func (db *DB) DeleteAPIKey(provider string) error {
	return db.Delete(&models.Credential{}, "provider = ?", provider).Error
}

// HasAPIKey reports whether a non-empty key is stored for a provider.
func (db *DB) HasAPIKey(provider string) (bool, error) {
	var count int64
	err := db.Model(&models.Credential{}).
		Where("provider = ? AND key <> ''", provider).
		Count(&count).Error
	return count > 0, err
}

// ListCredentialProviders returns the providers that have a stored key.
func (db *DB) ListCredentialProviders() ([]string, error) {
	var providers []string
	err := db.Model(&models.Credential{}).
		Where("key <> ''").
		Order("provider").
		Pluck("provider", &providers).Error
	return providers, err
}
