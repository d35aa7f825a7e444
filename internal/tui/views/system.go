package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// SystemView shows host details, storage, containers and caches.
type SystemView struct {
	width  int
	height int
	scroll int

	logs *models.LogInfo
	err  error
}

// NewSystemView creates a system view.
func NewSystemView() *SystemView {
	return &SystemView{width: 80, height: 24}
}

// SetSize sets the width and height of the view.
func (sv *SystemView) SetSize(width, height int) {
	sv.width = width
	sv.height = height
}

// SetLogInfo records the system log footprint.
func (sv *SystemView) SetLogInfo(info *models.LogInfo) {
	sv.logs = info
}

// SetError records the last refresh failure; nil clears it.
func (sv *SystemView) SetError(err error) {
	sv.err = err
}

// Update handles keyboard input.
func (sv *SystemView) Update(key string) {
	switch key {
	case "up", "k":
		if sv.scroll > 0 {
			sv.scroll--
		}
	case "down", "j":
		sv.scroll++
	case "g":
		sv.scroll = 0
	}
}

// GetKeyboardCommands returns the system view's key reference.
func (sv *SystemView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "System",
		Commands: []Command{
			{Key: "↑↓, j/k", Description: "Scroll"},
			{Key: "g", Description: "Back to top"},
		},
	}
}

// View renders the system view for st.
func (sv *SystemView) View(st *store.State) string {
	sections := []string{
		sv.renderHost(st.SystemInfo),
		sv.renderStorage(st.StorageBreakdown),
		sv.renderDocker(st.DockerInfo),
		sv.renderCaches(st.PackageCaches),
	}
	if sv.logs != nil {
		sections = append(sections, sectionTitle("Logs")+"\n"+
			fmt.Sprintf("  %s: %s in %d files  %s", sv.logs.Name,
				aggregate.FormatBytes(sv.logs.Size), sv.logs.FileCount, muted(FormatPath(sv.logs.Path))))
	}
	if sv.err != nil {
		sections = append([]string{colored("Refresh failed: "+sv.err.Error(), theme.Current().Error)}, sections...)
	}

	lines := strings.Split(strings.Join(sections, "\n\n"), "\n")
	sv.scroll = min(sv.scroll, max(len(lines)-1, 0))
	end := min(sv.scroll+max(sv.height-4, 5), len(lines))
	return strings.Join(lines[sv.scroll:end], "\n")
}

func (sv *SystemView) renderHost(info *models.SystemSnapshot) string {
	if info == nil {
		return sectionTitle("Host") + "\n" + muted("  waiting for the first refresh…")
	}
	disk := aggregate.DiskPercent(info)
	mem := aggregate.MemoryPercent(info)
	barWidth := max(min(sv.width-40, 40), 10)

	return strings.Join([]string{
		sectionTitle("Host"),
		fmt.Sprintf("  %-10s %s", "Hostname", info.Hostname),
		fmt.Sprintf("  %-10s %s", "OS", info.OS),
		fmt.Sprintf("  %-10s %s", "Kernel", info.Kernel),
		fmt.Sprintf("  %-10s %s %3d%%  %s free", "Disk",
			ProgressBar(disk, barWidth, theme.LevelColor(aggregate.UsageLevel(disk))),
			disk, aggregate.FormatBytes(info.DiskAvailable)),
		fmt.Sprintf("  %-10s %s %3d%%  %s available", "Memory",
			ProgressBar(mem, barWidth, theme.LevelColor(aggregate.UsageLevel(mem))),
			mem, aggregate.FormatBytes(info.MemoryAvailable)),
	}, "\n")
}

func (sv *SystemView) renderStorage(b *models.StorageBreakdown) string {
	slices := aggregate.StorageChart(b)
	if len(slices) == 0 {
		return sectionTitle("Storage") + "\n" + muted("  no storage breakdown yet")
	}
	barWidth := max(min(sv.width-44, 40), 10)
	lines := []string{sectionTitle(fmt.Sprintf("Storage (%s used)", aggregate.FormatBytes(b.TotalUsed)))}
	for _, s := range slices {
		lines = append(lines, fmt.Sprintf("  %-14s %s %3d%%  %s",
			Truncate(s.Name, 14),
			ProgressBar(s.Percent, barWidth, lipgloss.Color(s.Color)),
			s.Percent, aggregate.FormatBytes(s.Size)))
	}
	return strings.Join(lines, "\n")
}

func (sv *SystemView) renderDocker(inv *models.ContainerInventory) string {
	if inv == nil {
		return sectionTitle("Docker") + "\n" + muted("  not available")
	}
	running := 0
	for _, c := range inv.Containers {
		if strings.HasPrefix(c.Status, "Up") {
			running++
		}
	}
	return strings.Join([]string{
		sectionTitle("Docker"),
		fmt.Sprintf("  %d images, %d containers (%d running), %d volumes",
			len(inv.Images), len(inv.Containers), running, len(inv.Volumes)),
		fmt.Sprintf("  build cache %s, unused %s",
			aggregate.FormatBytes(inv.BuildCacheSize), aggregate.FormatBytes(inv.UnusedBytes())),
	}, "\n")
}

func (sv *SystemView) renderCaches(caches []models.PackageCacheEntry) string {
	lines := []string{sectionTitle(fmt.Sprintf("Package caches (%s)",
		aggregate.FormatBytes(aggregate.PackageCacheBytes(caches))))}
	found := false
	for _, c := range caches {
		if !c.Exists {
			continue
		}
		found = true
		lines = append(lines, fmt.Sprintf("  %-10s %10s  %s",
			c.Manager, aggregate.FormatBytes(c.Size), muted(FormatPath(c.Path))))
	}
	if !found {
		lines = append(lines, muted("  none found"))
	}
	return strings.Join(lines, "\n")
}
