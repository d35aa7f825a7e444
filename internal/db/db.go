// Package db provides a GORM-based database layer for CleanOS.
// It uses the pure-Go SQLite driver and stores settings, provider
// credentials and scan history.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// DB wraps the GORM database connection with CleanOS-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode: WAL has visibility issues with the pure-Go driver.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := wrapped.seedSettings(); err != nil {
		return nil, fmt.Errorf("seed settings: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Setting{},
		&models.Credential{},
		&models.ScanRecord{},
	)
}

// seedSettings inserts default settings if not present.
func (db *DB) seedSettings() error {
	defaults := []models.Setting{
		{Key: models.SettingTheme, Value: "dark"},
	}

	for _, s := range defaults {
		if err := db.Where("key = ?", s.Key).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fc(&DB{DB: tx, path: d.path})
	})
}

// Stats summarises what the database holds.
type Stats struct {
	Settings    int64     `json:"settings"`
	Credentials int64     `json:"credentials"`
	Scans       int64     `json:"scans"`
	SizeBytes   int64     `json:"size_bytes"`
	LastUpdated time.Time `json:"last_updated"`
}

// GetStats returns aggregate statistics about the database.
func (db *DB) GetStats() (*Stats, error) {
	var stats Stats

	if err := db.Model(&models.Setting{}).Count(&stats.Settings).Error; err != nil {
		return nil, fmt.Errorf("count settings: %w", err)
	}
	if err := db.Model(&models.Credential{}).Count(&stats.Credentials).Error; err != nil {
		return nil, fmt.Errorf("count credentials: %w", err)
	}
	if err := db.Model(&models.ScanRecord{}).Count(&stats.Scans).Error; err != nil {
		return nil, fmt.Errorf("count scans: %w", err)
	}

	if info, err := os.Stat(db.path); err == nil {
		stats.SizeBytes = info.Size()
	}
	stats.LastUpdated = time.Now()

	return &stats, nil
}
