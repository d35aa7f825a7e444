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

// DashboardAction is what the dashboard asks the model to do after a key.
type DashboardAction int

const (
	DashboardActionNone DashboardAction = iota
	DashboardActionClean
)

// maxRecommendations caps the recommendation list on the dashboard.
const maxRecommendations = 8

// DashboardView summarizes disk, memory, scan and cleanup state.
type DashboardView struct {
	width  int
	height int
	cursor int
}

// NewDashboardView creates a dashboard view.
func NewDashboardView() *DashboardView {
	return &DashboardView{width: 80, height: 24}
}

// SetSize sets the width and height of the view.
func (dv *DashboardView) SetSize(width, height int) {
	dv.width = width
	dv.height = height
}

// Update handles keyboard input.
func (dv *DashboardView) Update(key string, st *store.State) DashboardAction {
	n := min(len(st.CleanupRecommendations), maxRecommendations)
	switch key {
	case "up", "k":
		if dv.cursor > 0 {
			dv.cursor--
		}
	case "down", "j":
		if dv.cursor < n-1 {
			dv.cursor++
		}
	case "enter":
		if n > 0 {
			return DashboardActionClean
		}
	}
	return DashboardActionNone
}

// SelectedRecommendation returns the recommendation under the cursor.
func (dv *DashboardView) SelectedRecommendation(st *store.State) (models.CleanupRecommendation, bool) {
	recs := st.CleanupRecommendations
	if dv.cursor < 0 || dv.cursor >= len(recs) || dv.cursor >= maxRecommendations {
		return models.CleanupRecommendation{}, false
	}
	return recs[dv.cursor], true
}

// GetKeyboardCommands returns the dashboard's key reference.
func (dv *DashboardView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "Dashboard",
		Commands: []Command{
			{Key: "↑↓, j/k", Description: "Move between recommendations"},
			{Key: "enter", Description: "Clean up the selected recommendation"},
		},
	}
}

// View renders the dashboard for st.
func (dv *DashboardView) View(st *store.State) string {
	sum := aggregate.Summarize(st)
	t := theme.Current()

	cardWidth := max((dv.width-8)/3, 22)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Overlay).
		Padding(0, 1).
		Width(cardWidth)

	disk := "waiting for system info"
	memory := disk
	if info := st.SystemInfo; info != nil {
		disk = fmt.Sprintf("%s\n%s of %s",
			ProgressBar(sum.DiskPercent, cardWidth-4, theme.LevelColor(sum.DiskLevel)),
			aggregate.FormatBytes(info.DiskUsed), aggregate.FormatBytes(info.DiskTotal))
		memLevel := aggregate.UsageLevel(sum.MemoryPercent)
		memory = fmt.Sprintf("%s\n%s of %s",
			ProgressBar(sum.MemoryPercent, cardWidth-4, theme.LevelColor(memLevel)),
			aggregate.FormatBytes(info.MemoryUsed), aggregate.FormatBytes(info.MemoryTotal))
	}

	files := fmt.Sprintf("%d files, %s\n%d selected, %s",
		sum.FileCount, aggregate.FormatSize(sum.TotalSize),
		sum.SelectedCount, aggregate.FormatSize(sum.SelectedSize))
	if st.IsScanning {
		files = "scanning…\n" + files
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(sectionTitle(fmt.Sprintf("Disk %d%%", sum.DiskPercent))+"\n"+disk),
		card.Render(sectionTitle(fmt.Sprintf("Memory %d%%", sum.MemoryPercent))+"\n"+memory),
		card.Render(sectionTitle("Files")+"\n"+files),
	)

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(sectionTitle(fmt.Sprintf("Reclaimable: %s", aggregate.FormatBytes(sum.TotalReclaimable))))
	b.WriteString(muted(fmt.Sprintf("  (recommendations %s, docker %s, caches %s)",
		aggregate.FormatBytes(sum.Reclaimable),
		aggregate.FormatBytes(aggregate.UnusedContainerBytes(st.DockerInfo)),
		aggregate.FormatBytes(aggregate.PackageCacheBytes(st.PackageCaches)))))
	b.WriteString("\n\n")
	b.WriteString(dv.renderRecommendations(st.CleanupRecommendations))

	if id := st.ActiveProviderID(); id != "" {
		b.WriteString("\n")
		b.WriteString(muted("AI provider: " + id))
	}
	return b.String()
}

func (dv *DashboardView) renderRecommendations(recs []models.CleanupRecommendation) string {
	if len(recs) == 0 {
		return muted("No cleanup recommendations yet. Press r to refresh.")
	}

	t := theme.Current()
	var lines []string
	for i, rec := range recs {
		if i >= maxRecommendations {
			lines = append(lines, muted(fmt.Sprintf("  … and %d more", len(recs)-maxRecommendations)))
			break
		}
		sev := aggregate.SeverityFor(rec.RiskLevel)
		marker := "  "
		title := lipgloss.NewStyle().Foreground(t.Text)
		if i == dv.cursor {
			marker = "▸ "
			title = title.Foreground(t.TextHighlight).Bold(true)
		}
		line := fmt.Sprintf("%s%s %s %s",
			marker,
			colored("●", theme.SeverityColor(sev)),
			title.Render(Truncate(rec.Title, max(dv.width-30, 20))),
			muted(aggregate.FormatBytes(rec.SpaceReclaimable)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
