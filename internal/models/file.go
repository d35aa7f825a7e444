package models

import (
	"path/filepath"
	"strings"
	"time"
)

// FileCategory classifies a scanned file.
type FileCategory string

const (
	CategoryDocument FileCategory = "document"
	CategoryMedia    FileCategory = "media"
	CategoryCode     FileCategory = "code"
	CategoryArchive  FileCategory = "archive"
	CategorySystem   FileCategory = "system"
	CategoryOther    FileCategory = "other"
)

// FileAction is the action suggested by an AI analysis.
type FileAction string

const (
	ActionKeep   FileAction = "keep"
	ActionReview FileAction = "review"
	ActionDelete FileAction = "delete"
	ActionMove   FileAction = "move"
)

// AIAnalysis is the result of asking a provider about a file.
type AIAnalysis struct {
	Category          FileCategory `json:"category"`
	Importance        float64      `json:"importance"`
	Action            FileAction   `json:"action"`
	SuggestedLocation string       `json:"suggested_location,omitempty"`
	Confidence        float64      `json:"confidence"`
	Summary           string       `json:"summary,omitempty"`
}

// FileRecord is one entry produced by a directory scan.
// A scan replaces the whole collection; records are never merged.
type FileRecord struct {
	ID              string       `json:"id"`
	Path            string       `json:"path"`
	Name            string       `json:"name"`
	Size            int64        `json:"size"`
	ModifiedAt      int64        `json:"modified_at"`
	Hash            string       `json:"hash,omitempty"`
	Category        FileCategory `json:"category,omitempty"`
	ImportanceScore *float64     `json:"importance_score,omitempty"`
	AIAnalysis      *AIAnalysis  `json:"ai_analysis,omitempty"`
	IsDirectory     bool         `json:"is_directory"`
	Extension       string       `json:"extension,omitempty"`
}

// Modified returns the modification time as a time.Time.
func (f FileRecord) Modified() time.Time {
	return time.Unix(f.ModifiedAt, 0)
}

// ScanProgress reports an in-flight scan.
type ScanProgress struct {
	TotalFiles   int    `json:"total_files"`
	ScannedFiles int    `json:"scanned_files"`
	CurrentPath  string `json:"current_path"`
	BytesScanned int64  `json:"bytes_scanned"`
}

var extensionCategories = map[string]FileCategory{
	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"txt": CategoryDocument, "md": CategoryDocument, "odt": CategoryDocument,
	"xls": CategoryDocument, "xlsx": CategoryDocument, "csv": CategoryDocument,
	"ppt": CategoryDocument, "pptx": CategoryDocument, "rtf": CategoryDocument,

	"jpg": CategoryMedia, "jpeg": CategoryMedia, "png": CategoryMedia,
	"gif": CategoryMedia, "webp": CategoryMedia, "svg": CategoryMedia,
	"mp3": CategoryMedia, "wav": CategoryMedia, "flac": CategoryMedia,
	"mp4": CategoryMedia, "mkv": CategoryMedia, "mov": CategoryMedia,
	"avi": CategoryMedia, "heic": CategoryMedia,

	"go": CategoryCode, "rs": CategoryCode, "py": CategoryCode,
	"js": CategoryCode, "ts": CategoryCode, "tsx": CategoryCode,
	"java": CategoryCode, "c": CategoryCode, "h": CategoryCode,
	"cpp": CategoryCode, "rb": CategoryCode, "sh": CategoryCode,
	"json": CategoryCode, "yaml": CategoryCode, "yml": CategoryCode,
	"toml": CategoryCode, "html": CategoryCode, "css": CategoryCode,

	"zip": CategoryArchive, "tar": CategoryArchive, "gz": CategoryArchive,
	"tgz": CategoryArchive, "bz2": CategoryArchive, "xz": CategoryArchive,
	"7z": CategoryArchive, "rar": CategoryArchive, "zst": CategoryArchive,
	"iso": CategoryArchive, "dmg": CategoryArchive,

	"log": CategorySystem, "tmp": CategorySystem, "cache": CategorySystem,
	"bak": CategorySystem, "swp": CategorySystem, "lock": CategorySystem,
}

// FileExtension returns the lowercase extension of name without the dot.
// "archive.tar.gz" yields "gz"; "Makefile" yields "".
func FileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// CategorizeExtension maps a file extension to a category.
func CategorizeExtension(ext string) FileCategory {
	if c, ok := extensionCategories[strings.ToLower(ext)]; ok {
		return c
	}
	return CategoryOther
}
