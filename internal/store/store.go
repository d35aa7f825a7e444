// Package store holds the process-wide application state shared by every
// view surface. All mutation goes through named actions; each action
// publishes a new immutable snapshot, so readers never observe a partial
// update.
package store

import (
	"maps"
	"slices"
	"sync"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// ThemeHook is called after SetTheme commits. dark reports whether the
// renderer should switch to the dark palette.
type ThemeHook func(theme Theme, dark bool)

// Option configures a Store.
type Option func(*Store)

// WithThemeHook installs the presentation side effect of SetTheme.
func WithThemeHook(h ThemeHook) Option {
	return func(s *Store) { s.themeHook = h }
}

// Store is the single source of truth for cross-surface state.
// Actions are serialised by a mutex and never fail. Last writer wins per
// slice; callers that need ordering must serialise their own requests.
type Store struct {
	mu    sync.Mutex
	state *State

	// sel backs the published Selection. It is copied before the next
	// write once a snapshot holding it has been handed out.
	sel       map[string]struct{}
	selShared bool

	subs      map[int]*subscription
	nextSubID int

	themeHook ThemeHook
}

type subscription struct {
	ch     chan Slice
	filter map[Slice]struct{}
}

// New creates a store with the initial state.
func New(opts ...Option) *Store {
	st := initialState()
	s := &Store{
		state: st,
		sel:   st.SelectedFiles.ids,
		subs:  make(map[int]*subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the latest committed state. It never blocks on
// in-flight I/O; the lock is only held for a pointer read.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selShared = true
	return s.state
}

// Subscribe returns a channel that receives the name of every slice that
// changes. With no slices given, every change is delivered. Deliveries
// are dropped when the subscriber falls behind; subscribers re-read the
// snapshot, so a dropped name never loses state. The returned func stops
// the subscription.
func (s *Store) Subscribe(slices ...Slice) (<-chan Slice, func()) {
	sub := &subscription{ch: make(chan Slice, 32)}
	if len(slices) > 0 {
		sub.filter = make(map[Slice]struct{}, len(slices))
		for _, sl := range slices {
			sub.filter[sl] = struct{}{}
		}
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(sub.ch)
		})
	}
}

// commit applies fn to a shallow copy of the current state and publishes it.
func (s *Store) commit(slice Slice, fn func(next *State)) {
	s.mu.Lock()
	next := *s.state
	fn(&next)
	s.state = &next

	var targets []chan Slice
	for _, sub := range s.subs {
		if sub.filter != nil {
			if _, ok := sub.filter[slice]; !ok {
				continue
			}
		}
		targets = append(targets, sub.ch)
	}
	// Sends happen under the lock so an unsubscribe cannot close a
	// channel mid-send; they never block.
	for _, ch := range targets {
		select {
		case ch <- slice:
		default:
		}
	}
	s.mu.Unlock()
}

// mutateSelection applies fn to a writable selection map and publishes it.
func (s *Store) mutateSelection(fn func(sel map[string]struct{}, st *State) map[string]struct{}) {
	s.commit(SliceSelection, func(next *State) {
		if s.selShared {
			s.sel = maps.Clone(s.sel)
			s.selShared = false
		}
		s.sel = fn(s.sel, next)
		next.SelectedFiles = Selection{ids: s.sel}
	})
}

// SetTheme replaces the theme and switches the renderer palette.
func (s *Store) SetTheme(theme Theme) {
	dark := theme == ThemeDark
	s.commit(SliceTheme, func(next *State) {
		next.Theme = theme
		next.DarkPalette = dark
	})
	if s.themeHook != nil {
		s.themeHook(theme, dark)
	}
}

// SetCurrentView replaces the current view.
func (s *Store) SetCurrentView(view View) {
	s.commit(SliceView, func(next *State) { next.CurrentView = view })
}

// ToggleSidebar flips the sidebar collapsed flag.
func (s *Store) ToggleSidebar() {
	s.commit(SliceSidebar, func(next *State) { next.SidebarCollapsed = !next.SidebarCollapsed })
}

// SetScannedFiles replaces the file collection. The selection is left
// untouched, including ids that no longer resolve; see PruneSelection.
func (s *Store) SetScannedFiles(files []models.FileRecord) {
	files = slices.Clone(files)
	s.commit(SliceFiles, func(next *State) { next.ScannedFiles = files })
}

// ToggleFileSelection flips membership of id in the selection. Ids that
// match no record are accepted.
func (s *Store) ToggleFileSelection(id string) {
	s.mutateSelection(func(sel map[string]struct{}, _ *State) map[string]struct{} {
		if _, ok := sel[id]; ok {
			delete(sel, id)
		} else {
			sel[id] = struct{}{}
		}
		return sel
	})
}

// SelectAllFiles selects every record in the current collection.
func (s *Store) SelectAllFiles() {
	s.mutateSelection(func(_ map[string]struct{}, st *State) map[string]struct{} {
		sel := make(map[string]struct{}, len(st.ScannedFiles))
		for _, f := range st.ScannedFiles {
			sel[f.ID] = struct{}{}
		}
		return sel
	})
}

// DeselectAllFiles empties the selection.
func (s *Store) DeselectAllFiles() {
	s.mutateSelection(func(_ map[string]struct{}, _ *State) map[string]struct{} {
		return map[string]struct{}{}
	})
}

// PruneSelection drops selected ids that match no current record.
func (s *Store) PruneSelection() {
	s.mutateSelection(func(sel map[string]struct{}, st *State) map[string]struct{} {
		present := make(map[string]struct{}, len(st.ScannedFiles))
		for _, f := range st.ScannedFiles {
			present[f.ID] = struct{}{}
		}
		for id := range sel {
			if _, ok := present[id]; !ok {
				delete(sel, id)
			}
		}
		return sel
	})
}

// SetScanProgress replaces the scan progress; nil clears it.
func (s *Store) SetScanProgress(progress *models.ScanProgress) {
	if progress != nil {
		p := *progress
		progress = &p
	}
	s.commit(SliceScanProgress, func(next *State) { next.ScanProgress = progress })
}

// SetIsScanning replaces the scanning flag.
func (s *Store) SetIsScanning(scanning bool) {
	s.commit(SliceScanning, func(next *State) { next.IsScanning = scanning })
}

// TryStartScan sets the scanning flag if it is clear and reports whether
// it did. It lets a surface gate a second scan without a check-then-set race.
func (s *Store) TryStartScan() bool {
	started := false
	s.commit(SliceScanning, func(next *State) {
		if !next.IsScanning {
			next.IsScanning = true
			started = true
		}
	})
	return started
}

// SetSystemInfo replaces the system snapshot.
func (s *Store) SetSystemInfo(info models.SystemSnapshot) {
	s.commit(SliceSystem, func(next *State) { next.SystemInfo = &info })
}

// SetStorageBreakdown replaces the storage breakdown.
func (s *Store) SetStorageBreakdown(breakdown models.StorageBreakdown) {
	breakdown.Categories = slices.Clone(breakdown.Categories)
	s.commit(SliceStorage, func(next *State) { next.StorageBreakdown = &breakdown })
}

// SetDockerInfo replaces the container inventory.
func (s *Store) SetDockerInfo(info models.ContainerInventory) {
	info.Images = slices.Clone(info.Images)
	info.Containers = slices.Clone(info.Containers)
	info.Volumes = slices.Clone(info.Volumes)
	s.commit(SliceDocker, func(next *State) { next.DockerInfo = &info })
}

// SetPackageCaches replaces the package cache list.
func (s *Store) SetPackageCaches(caches []models.PackageCacheEntry) {
	caches = slices.Clone(caches)
	s.commit(SlicePackageCaches, func(next *State) { next.PackageCaches = caches })
}

// SetCleanupRecommendations replaces the recommendation list.
func (s *Store) SetCleanupRecommendations(recs []models.CleanupRecommendation) {
	recs = slices.Clone(recs)
	s.commit(SliceRecommendations, func(next *State) { next.CleanupRecommendations = recs })
}

// SetProviders replaces the provider status list.
func (s *Store) SetProviders(providers []models.ProviderStatus) {
	providers = slices.Clone(providers)
	s.commit(SliceProviders, func(next *State) { next.Providers = providers })
}

// UpsertProviderStatus replaces the entry with the same id, or appends
// it when no entry exists. Entries are never duplicated.
func (s *Store) UpsertProviderStatus(status models.ProviderStatus) {
	s.commit(SliceProviders, func(next *State) {
		out := make([]models.ProviderStatus, 0, len(next.Providers)+1)
		replaced := false
		for _, p := range next.Providers {
			if p.ID == status.ID {
				if !replaced {
					out = append(out, status)
					replaced = true
				}
				continue
			}
			out = append(out, p)
		}
		if !replaced {
			out = append(out, status)
		}
		next.Providers = out
	})
}

// SetActiveProvider sets the globally active provider. The id is not
// checked against the provider list.
func (s *Store) SetActiveProvider(id string) {
	s.commit(SliceActiveProvider, func(next *State) { next.ActiveProvider = &id })
}

// ClearActiveProvider unsets the active provider.
func (s *Store) ClearActiveProvider() {
	s.commit(SliceActiveProvider, func(next *State) { next.ActiveProvider = nil })
}
