package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// FilesAction is what the files view asks the model to do after a key.
type FilesAction int

const (
	FilesActionNone FilesAction = iota
	FilesActionToggle
	FilesActionSelectAll
	FilesActionDeselectAll
	FilesActionScan
	FilesActionAddDir
	FilesActionRemoveDir
	FilesActionDuplicates
	FilesActionAnalyze
)

// FilesView lists scanned files and the configured scan directories.
type FilesView struct {
	width  int
	height int
	cursor int

	dirs      []string
	dirCursor int

	adding bool
	input  textinput.Model

	duplicates [][]models.FileRecord
	analysis   map[string]*models.AIAnalysis
}

// NewFilesView creates a files view.
func NewFilesView() *FilesView {
	ti := textinput.New()
	ti.Placeholder = "~/path/to/scan"
	ti.CharLimit = 512
	return &FilesView{width: 80, height: 24, input: ti, analysis: map[string]*models.AIAnalysis{}}
}

// SetSize sets the width and height of the view.
func (fv *FilesView) SetSize(width, height int) {
	fv.width = width
	fv.height = height
	fv.input.Width = max(width-20, 20)
}

// SetDirs replaces the scan directory list, keeping the cursor in range.
func (fv *FilesView) SetDirs(dirs []string) {
	fv.dirs = dirs
	if fv.dirCursor >= len(dirs) {
		fv.dirCursor = max(len(dirs)-1, 0)
	}
}

// Dirs returns the scan directory list.
func (fv *FilesView) Dirs() []string {
	return fv.dirs
}

// CurrentDir returns the directory the next scan will walk.
func (fv *FilesView) CurrentDir() string {
	if len(fv.dirs) == 0 {
		return ""
	}
	return fv.dirs[fv.dirCursor]
}

// InputValue returns the directory typed while adding one.
func (fv *FilesView) InputValue() string {
	return strings.TrimSpace(fv.input.Value())
}

// Capturing reports whether the view is consuming raw key input.
func (fv *FilesView) Capturing() bool {
	return fv.adding
}

// SetDuplicates records the result of a duplicate search.
func (fv *FilesView) SetDuplicates(groups [][]models.FileRecord) {
	fv.duplicates = groups
}

// SetAnalysis merges AI analysis results, keyed by path.
func (fv *FilesView) SetAnalysis(records []models.FileRecord) {
	for _, r := range records {
		if r.AIAnalysis != nil {
			fv.analysis[r.Path] = r.AIAnalysis
		}
	}
}

// CursorFile returns the record under the cursor.
func (fv *FilesView) CursorFile(st *store.State) (models.FileRecord, bool) {
	if fv.cursor < 0 || fv.cursor >= len(st.ScannedFiles) {
		return models.FileRecord{}, false
	}
	return st.ScannedFiles[fv.cursor], true
}

// Update handles keyboard input.
func (fv *FilesView) Update(msg tea.KeyMsg, st *store.State) (FilesAction, tea.Cmd) {
	key := msg.String()

	if fv.adding {
		switch key {
		case "esc":
			fv.adding = false
			fv.input.Blur()
			fv.input.SetValue("")
			return FilesActionNone, nil
		case "enter":
			fv.adding = false
			fv.input.Blur()
			if fv.InputValue() == "" {
				return FilesActionNone, nil
			}
			return FilesActionAddDir, nil
		}
		var cmd tea.Cmd
		fv.input, cmd = fv.input.Update(msg)
		return FilesActionNone, cmd
	}

	n := len(st.ScannedFiles)
	switch key {
	case "up", "k":
		if fv.cursor > 0 {
			fv.cursor--
		}
	case "down", "j":
		if fv.cursor < n-1 {
			fv.cursor++
		}
	case "pgup":
		fv.cursor = max(fv.cursor-fv.listHeight(), 0)
	case "pgdown":
		fv.cursor = max(min(fv.cursor+fv.listHeight(), n-1), 0)
	case "left", "[":
		if fv.dirCursor > 0 {
			fv.dirCursor--
		}
	case "right", "]":
		if fv.dirCursor < len(fv.dirs)-1 {
			fv.dirCursor++
		}
	case " ":
		if n > 0 {
			return FilesActionToggle, nil
		}
	case "a":
		return FilesActionSelectAll, nil
	case "A":
		return FilesActionDeselectAll, nil
	case "s":
		if fv.CurrentDir() != "" {
			return FilesActionScan, nil
		}
	case "+":
		fv.adding = true
		fv.input.SetValue("")
		return FilesActionNone, fv.input.Focus()
	case "-":
		if fv.CurrentDir() != "" {
			return FilesActionRemoveDir, nil
		}
	case "d":
		if n > 0 {
			return FilesActionDuplicates, nil
		}
	case "i":
		if st.SelectedFiles.Len() > 0 {
			return FilesActionAnalyze, nil
		}
	}
	if fv.cursor >= n {
		fv.cursor = max(n-1, 0)
	}
	return FilesActionNone, nil
}

// GetKeyboardCommands returns the files view's key reference.
func (fv *FilesView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "Files",
		Commands: []Command{
			{Key: "↑↓, j/k", Description: "Move through files"},
			{Key: "←→, [ ]", Description: "Choose scan directory"},
			{Key: "s", Description: "Scan the chosen directory"},
			{Key: "space", Description: "Toggle selection"},
			{Key: "a / A", Description: "Select all / deselect all"},
			{Key: "+ / -", Description: "Add / remove scan directory"},
			{Key: "d", Description: "Find duplicates among scanned files"},
			{Key: "i", Description: "Ask the AI provider about selected files"},
		},
	}
}

func (fv *FilesView) listHeight() int {
	return max(fv.height-8, 3)
}

// View renders the files view for st.
func (fv *FilesView) View(st *store.State) string {
	var b strings.Builder

	b.WriteString(fv.renderDirs())
	b.WriteString("\n")

	if fv.adding {
		b.WriteString("Add directory: " + fv.input.View() + "\n")
	}

	if st.IsScanning {
		b.WriteString(fv.renderProgress(st.ScanProgress))
		b.WriteString("\n")
	}

	sum := aggregate.Summarize(st)
	b.WriteString(muted(fmt.Sprintf("%d files, %s • %d selected, %s",
		sum.FileCount, aggregate.FormatSize(sum.TotalSize),
		sum.SelectedCount, aggregate.FormatSize(sum.SelectedSize))))
	b.WriteString("\n\n")

	if len(st.ScannedFiles) == 0 {
		b.WriteString(muted("No files scanned yet. Press s to scan the chosen directory."))
	} else {
		b.WriteString(fv.renderList(st))
	}

	if len(fv.duplicates) > 0 {
		b.WriteString("\n\n")
		b.WriteString(fv.renderDuplicates())
	}
	return b.String()
}

func (fv *FilesView) renderDirs() string {
	if len(fv.dirs) == 0 {
		return muted("No scan directories. Press + to add one.")
	}
	t := theme.Current()
	parts := make([]string, len(fv.dirs))
	for i, d := range fv.dirs {
		style := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
		if i == fv.dirCursor {
			style = style.Foreground(t.TextHighlight).Background(t.Overlay).Bold(true)
		}
		parts[i] = style.Render(FormatPath(d))
	}
	return sectionTitle("Scan: ") + strings.Join(parts, " ")
}

func (fv *FilesView) renderProgress(p *models.ScanProgress) string {
	if p == nil {
		return colored("Scanning…", theme.Current().Info)
	}
	return colored(fmt.Sprintf("Scanning… %d files, %s  %s",
		p.ScannedFiles, aggregate.FormatSize(p.BytesScanned), Truncate(FormatPath(p.CurrentPath), 40)),
		theme.Current().Info)
}

func (fv *FilesView) renderList(st *store.State) string {
	t := theme.Current()
	files := st.ScannedFiles
	start, end := visibleWindow(len(files), fv.cursor, fv.listHeight())
	nameWidth := max(fv.width-46, 16)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := files[i]
		name := f.Name
		if f.IsDirectory {
			name += "/"
		}
		style := lipgloss.NewStyle().Foreground(t.Text)
		marker := "  "
		if i == fv.cursor {
			marker = "▸ "
			style = style.Foreground(t.TextHighlight).Bold(true)
		}
		line := fmt.Sprintf("%s%s %s %10s  %s  %s",
			marker,
			Checkbox(st.SelectedFiles.Has(f.ID)),
			style.Render(fmt.Sprintf("%-*s", nameWidth, Truncate(name, nameWidth))),
			aggregate.FormatSize(f.Size),
			colored(fmt.Sprintf("%-8s", f.Category), theme.CategoryColor(f.Category)),
			muted(f.Modified().Format(time.DateOnly)))
		if a := fv.analysis[f.Path]; a != nil {
			line += " " + colored(fmt.Sprintf("AI: %s (%.0f%%)", a.Action, a.Confidence*100), t.Accent)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (fv *FilesView) renderDuplicates() string {
	var b strings.Builder
	b.WriteString(sectionTitle(fmt.Sprintf("Duplicates: %d groups", len(fv.duplicates))))
	for i, group := range fv.duplicates {
		if i >= 5 {
			b.WriteString("\n" + muted(fmt.Sprintf("  … and %d more groups", len(fv.duplicates)-5)))
			break
		}
		wasted := int64(0)
		if len(group) > 1 {
			wasted = group[0].Size * int64(len(group)-1)
		}
		b.WriteString(fmt.Sprintf("\n  %d copies of %s (%s wasted)",
			len(group), group[0].Name, aggregate.FormatSize(wasted)))
	}
	return b.String()
}
