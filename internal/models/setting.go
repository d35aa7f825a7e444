package models

import "time"

// Setting is a named string value persisted by the backend.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys.
const (
	SettingScanDirectories = "scan_directories"
	SettingTheme           = "theme"
	SettingDefaultProvider = "default_provider"
	SettingTrackingID      = "tracking_id"
)

// Credential is an API key stored for a provider.
// Keys are stored as given; encryption is the platform keychain's job.
type Credential struct {
	Provider  string    `gorm:"primaryKey;size:64" json:"provider"`
	Key       string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Credential) TableName() string {
	return "credentials"
}

// ScanStatus is the lifecycle state of a scan.
type ScanStatus string

const (
	ScanRunning   ScanStatus = "running"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
)

// ScanRecord is one entry of scan history.
type ScanRecord struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Root        string     `gorm:"size:1024;index" json:"root"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FilesFound  int        `json:"files_found"`
	TotalSize   int64      `json:"total_size"`
	Status      ScanStatus `gorm:"size:20;index" json:"status"`
	Error       string     `gorm:"size:1000" json:"error,omitempty"`
}

// TableName specifies the table name for GORM.
func (ScanRecord) TableName() string {
	return "scans"
}
