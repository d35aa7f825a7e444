package store

import (
	"encoding/json"
	"sort"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// Theme is the user's appearance preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme maps a persisted value to a Theme, defaulting to dark.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return Theme(s)
	default:
		return ThemeDark
	}
}

// View identifies a top-level view surface.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewFiles     View = "files"
	ViewSystem    View = "system"
	ViewAIChat    View = "ai-chat"
	ViewSettings  View = "settings"
)

// Views lists the views in navigation order.
var Views = []View{ViewDashboard, ViewFiles, ViewSystem, ViewAIChat, ViewSettings}

// Slice names an independently replaceable part of the state.
type Slice string

const (
	SliceTheme           Slice = "theme"
	SliceView            Slice = "view"
	SliceSidebar         Slice = "sidebar"
	SliceFiles           Slice = "files"
	SliceSelection       Slice = "selection"
	SliceScanProgress    Slice = "scan_progress"
	SliceScanning        Slice = "scanning"
	SliceSystem          Slice = "system"
	SliceStorage         Slice = "storage"
	SliceDocker          Slice = "docker"
	SlicePackageCaches   Slice = "package_caches"
	SliceRecommendations Slice = "recommendations"
	SliceProviders       Slice = "providers"
	SliceActiveProvider  Slice = "active_provider"
)

// Selection is an immutable view of the selected file ids.
type Selection struct {
	ids map[string]struct{}
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the selection as a sorted id list.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// State is one committed snapshot of the store.
// Snapshots are never modified after they are published; callers must
// treat every slice and pointer in it as read-only.
type State struct {
	Theme            Theme
	DarkPalette      bool
	CurrentView      View
	SidebarCollapsed bool

	ScannedFiles  []models.FileRecord
	SelectedFiles Selection
	ScanProgress  *models.ScanProgress
	IsScanning    bool

	SystemInfo             *models.SystemSnapshot
	StorageBreakdown       *models.StorageBreakdown
	DockerInfo             *models.ContainerInventory
	PackageCaches          []models.PackageCacheEntry
	CleanupRecommendations []models.CleanupRecommendation

	Providers      []models.ProviderStatus
	ActiveProvider *string
}

// Provider returns the status entry for id.
func (s *State) Provider(id string) (models.ProviderStatus, bool) {
	for _, p := range s.Providers {
		if p.ID == id {
			return p, true
		}
	}
	return models.ProviderStatus{}, false
}

// SelectedRecords returns the file records whose ids are selected.
// Selected ids with no matching record are skipped.
func (s *State) SelectedRecords() []models.FileRecord {
	var out []models.FileRecord
	for _, f := range s.ScannedFiles {
		if s.SelectedFiles.Has(f.ID) {
			out = append(out, f)
		}
	}
	return out
}

// ActiveProviderID returns the active provider id or "".
func (s *State) ActiveProviderID() string {
	if s.ActiveProvider == nil {
		return ""
	}
	return *s.ActiveProvider
}

func initialState() *State {
	return &State{
		Theme:         ThemeDark,
		DarkPalette:   true,
		CurrentView:   ViewDashboard,
		SelectedFiles: Selection{ids: map[string]struct{}{}},
	}
}
