package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/models"
)

func files(sizes ...int64) []models.FileRecord {
	out := make([]models.FileRecord, len(sizes))
	for i, size := range sizes {
		id := fmt.Sprintf("f%d", i+1)
		out[i] = models.FileRecord{ID: id, Name: id, Path: "/tmp/" + id, Size: size}
	}
	return out
}

func TestNew_InitialState(t *testing.T) {
	s := New()
	st := s.Snapshot()

	assert.Equal(t, ThemeDark, st.Theme)
	assert.True(t, st.DarkPalette)
	assert.Equal(t, ViewDashboard, st.CurrentView)
	assert.False(t, st.SidebarCollapsed)
	assert.Empty(t, st.ScannedFiles)
	assert.Equal(t, 0, st.SelectedFiles.Len())
	assert.Nil(t, st.SystemInfo)
	assert.Nil(t, st.ActiveProvider)
	assert.False(t, st.IsScanning)
}

func TestSetScannedFiles_ReplacesAndKeepsSelection(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2, 3))
	s.ToggleFileSelection("f1")
	s.ToggleFileSelection("ghost")

	for _, batch := range [][]models.FileRecord{files(5), files(), files(1, 1, 1, 1)} {
		s.SetScannedFiles(batch)
		st := s.Snapshot()
		assert.Len(t, st.ScannedFiles, len(batch))
		assert.Equal(t, []string{"f1", "ghost"}, st.SelectedFiles.IDs())
	}
}

func TestSetScannedFiles_CopiesInput(t *testing.T) {
	s := New()
	in := files(10)
	s.SetScannedFiles(in)
	in[0].Size = 999

	assert.Equal(t, int64(10), s.Snapshot().ScannedFiles[0].Size)
}

func TestToggleFileSelection_DoubleToggleRestores(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2))
	s.ToggleFileSelection("f2")
	before := s.Snapshot().SelectedFiles.IDs()

	for _, id := range []string{"f1", "f2", "unknown"} {
		s.ToggleFileSelection(id)
		s.ToggleFileSelection(id)
		assert.Equal(t, before, s.Snapshot().SelectedFiles.IDs(), "id %s", id)
	}
}

func TestToggleFileSelection_UnknownIDNeverPanics(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() { s.ToggleFileSelection("does-not-exist") })
	assert.True(t, s.Snapshot().SelectedFiles.Has("does-not-exist"))
}

func TestSelectAllThenDeselectAll(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2, 3))
	s.ToggleFileSelection("stale")

	s.SelectAllFiles()
	assert.Equal(t, []string{"f1", "f2", "f3"}, s.Snapshot().SelectedFiles.IDs())

	s.DeselectAllFiles()
	assert.Equal(t, 0, s.Snapshot().SelectedFiles.Len())
}

func TestScenario_ThreeFilesSelectAllDeselectOne(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(100, 200, 300))

	s.SelectAllFiles()
	s.ToggleFileSelection("f2")

	st := s.Snapshot()
	assert.Equal(t, 2, st.SelectedFiles.Len())
	assert.Len(t, st.SelectedRecords(), 2)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2))
	s.ToggleFileSelection("f1")

	old := s.Snapshot()
	s.ToggleFileSelection("f2")
	s.ToggleFileSelection("f1")
	s.SetScannedFiles(nil)

	assert.Equal(t, []string{"f1"}, old.SelectedFiles.IDs())
	assert.Len(t, old.ScannedFiles, 2)
	assert.Equal(t, []string{"f2"}, s.Snapshot().SelectedFiles.IDs())
}

func TestPruneSelection(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2))
	s.SelectAllFiles()
	s.ToggleFileSelection("ghost")

	s.SetScannedFiles(files(1))
	s.PruneSelection()

	assert.Equal(t, []string{"f1"}, s.Snapshot().SelectedFiles.IDs())
}

func TestSetTheme_TogglesPaletteAndCallsHook(t *testing.T) {
	var calls []bool
	s := New(WithThemeHook(func(theme Theme, dark bool) {
		calls = append(calls, dark)
	}))

	s.SetTheme(ThemeLight)
	assert.Equal(t, ThemeLight, s.Snapshot().Theme)
	assert.False(t, s.Snapshot().DarkPalette)

	s.SetTheme(ThemeDark)
	assert.True(t, s.Snapshot().DarkPalette)

	s.SetTheme(ThemeSystem)
	assert.False(t, s.Snapshot().DarkPalette)

	assert.Equal(t, []bool{false, true, false}, calls)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeSystem, ParseTheme("system"))
	assert.Equal(t, ThemeDark, ParseTheme(""))
	assert.Equal(t, ThemeDark, ParseTheme("neon"))
}

func TestToggleSidebarAndView(t *testing.T) {
	s := New()
	s.ToggleSidebar()
	assert.True(t, s.Snapshot().SidebarCollapsed)
	s.ToggleSidebar()
	assert.False(t, s.Snapshot().SidebarCollapsed)

	s.SetCurrentView(ViewSettings)
	assert.Equal(t, ViewSettings, s.Snapshot().CurrentView)
}

func TestSetActiveProvider_NoValidation(t *testing.T) {
	s := New()
	s.SetActiveProvider("not-a-provider")
	assert.Equal(t, "not-a-provider", s.Snapshot().ActiveProviderID())

	s.ClearActiveProvider()
	assert.Nil(t, s.Snapshot().ActiveProvider)
	assert.Equal(t, "", s.Snapshot().ActiveProviderID())
}

func TestUpsertProviderStatus(t *testing.T) {
	s := New()
	s.SetProviders([]models.ProviderStatus{
		{ID: "openai", Model: "gpt-4o-mini"},
		{ID: "claude"},
	})

	s.UpsertProviderStatus(models.ProviderStatus{ID: "openai", Connected: true, Model: "gpt-4o"})
	s.UpsertProviderStatus(models.ProviderStatus{ID: "kimi", Error: "no key"})

	st := s.Snapshot()
	require.Len(t, st.Providers, 3)
	p, ok := st.Provider("openai")
	require.True(t, ok)
	assert.True(t, p.Connected)
	assert.Equal(t, "gpt-4o", p.Model)
	assert.Equal(t, "openai", st.Providers[0].ID)

	_, ok = st.Provider("gemini")
	assert.False(t, ok)
}

func TestTryStartScan(t *testing.T) {
	s := New()
	assert.True(t, s.TryStartScan())
	assert.False(t, s.TryStartScan())
	s.SetIsScanning(false)
	assert.True(t, s.TryStartScan())
}

func TestSetters_ReplaceWholesale(t *testing.T) {
	s := New()

	s.SetSystemInfo(models.SystemSnapshot{Hostname: "a", MemoryTotal: 10})
	s.SetSystemInfo(models.SystemSnapshot{Hostname: "b"})
	assert.Equal(t, "b", s.Snapshot().SystemInfo.Hostname)
	assert.Zero(t, s.Snapshot().SystemInfo.MemoryTotal)

	s.SetStorageBreakdown(models.StorageBreakdown{TotalUsed: 5})
	assert.Equal(t, uint64(5), s.Snapshot().StorageBreakdown.TotalUsed)

	s.SetDockerInfo(models.ContainerInventory{BuildCacheSize: 7})
	assert.Equal(t, uint64(7), s.Snapshot().DockerInfo.BuildCacheSize)

	s.SetPackageCaches([]models.PackageCacheEntry{{Manager: "npm"}})
	assert.Len(t, s.Snapshot().PackageCaches, 1)

	s.SetCleanupRecommendations([]models.CleanupRecommendation{{ID: "r1"}, {ID: "r2"}})
	assert.Len(t, s.Snapshot().CleanupRecommendations, 2)

	s.SetScanProgress(&models.ScanProgress{ScannedFiles: 3})
	assert.Equal(t, 3, s.Snapshot().ScanProgress.ScannedFiles)
	s.SetScanProgress(nil)
	assert.Nil(t, s.Snapshot().ScanProgress)
}

func TestSubscribe_FiltersBySlice(t *testing.T) {
	s := New()
	ch, stop := s.Subscribe(SliceFiles)
	defer stop()

	s.SetCurrentView(ViewFiles)
	s.SetScannedFiles(files(1))

	select {
	case got := <-ch:
		assert.Equal(t, SliceFiles, got)
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}

	select {
	case got := <-ch:
		t.Fatalf("unexpected notification %s", got)
	default:
	}
}

func TestSubscribe_StopClosesChannel(t *testing.T) {
	s := New()
	ch, stop := s.Subscribe()
	stop()
	stop()

	_, ok := <-ch
	assert.False(t, ok)

	assert.NotPanics(t, func() { s.ToggleSidebar() })
}

func TestConcurrentActions(t *testing.T) {
	s := New()
	s.SetScannedFiles(files(1, 2, 3, 4))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.ToggleFileSelection(fmt.Sprintf("f%d", (i+j)%4+1))
				_ = s.Snapshot().SelectedFiles.Len()
				s.SetSystemInfo(models.SystemSnapshot{Hostname: "h"})
			}
		}(i)
	}
	wg.Wait()

	// 800 toggles over 4 ids, each toggled an even number of times.
	assert.Equal(t, 0, s.Snapshot().SelectedFiles.Len())
}
