// Package tui contains the Bubble Tea user interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/app"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/telemetry"
	"github.com/cleanos-ai/cleanos/internal/tui/components"
	"github.com/cleanos-ai/cleanos/internal/tui/design"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
	"github.com/cleanos-ai/cleanos/internal/tui/views"
)

// ThemeHook keeps the TUI palette in step with the store. Pass it to the
// store with store.WithThemeHook.
func ThemeHook(_ store.Theme, dark bool) {
	theme.SetDark(dark)
}

// viewTitles are the tab labels, in store.Views order.
var viewTitles = map[store.View]string{
	store.ViewDashboard: "Dashboard",
	store.ViewFiles:     "Files",
	store.ViewSystem:    "System",
	store.ViewAIChat:    "AI Chat",
	store.ViewSettings:  "Settings",
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	app       *app.App
	telemetry telemetry.Client
	keymap    Keymap
	styles    Styles

	ctx    context.Context
	cancel context.CancelFunc

	updates     <-chan store.Slice
	unsubscribe func()

	// Views
	dashboardView *views.DashboardView
	filesView     *views.FilesView
	systemView    *views.SystemView
	chatView      *views.ChatView
	settingsView  *views.SettingsView
	helpView      *views.HelpView

	// State
	width       int
	height      int
	ready       bool
	quitting    bool
	showingHelp bool
	status      string
	statusErr   bool

	// Session tracking
	sessionStart time.Time
	viewsVisited int
	scansRun     int
	chatsSent    int

	// Refresh ticker
	ticker   *time.Ticker
	tickChan <-chan time.Time

	// Quit confirmation dialog
	quitConfirmDialog  *components.ConfirmDialog
	showingQuitConfirm bool
}

// Message types for Bubble Tea
type (
	tickMsg         struct{}
	storeChangedMsg struct{ slice store.Slice }

	inventoryLoadedMsg struct{ err error }
	logInfoMsg         struct {
		info *models.LogInfo
		err  error
	}
	dirsLoadedMsg struct {
		dirs []string
		err  error
	}
	definitionsLoadedMsg struct {
		defs []models.ProviderDefinition
	}
	scanDoneMsg struct {
		dir   string
		files []models.FileRecord
		err   error
	}
	duplicatesMsg struct {
		groups [][]models.FileRecord
		err    error
	}
	analysisMsg struct {
		records []models.FileRecord
		err     error
	}
	chatReplyMsg struct {
		provider string
		reply    string
		err      error
	}
	providerTestedMsg struct {
		provider string
		err      error
	}
	keyChangedMsg struct {
		provider string
		stored   bool
		err      error
	}
	catalogRefreshedMsg struct {
		count int
		err   error
	}
	updateCheckedMsg struct {
		info *models.UpdateInfo
		err  error
	}
	cleanupDoneMsg struct {
		title  string
		result *models.CleanupResult
		err    error
	}
)

// NewModel creates the TUI model over a, which should already be
// bootstrapped.
func NewModel(a *app.App, tc telemetry.Client) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	keymap := DefaultKeymap()
	updates, unsubscribe := a.Store.Subscribe()

	global := make([]views.Command, 0, len(keymap.Bindings()))
	for _, b := range keymap.Bindings() {
		global = append(global, views.Command{Key: b.Help().Key, Description: b.Help().Desc})
	}

	connected := 0
	for _, p := range a.Store.Snapshot().Providers {
		if p.Connected {
			connected++
		}
	}
	tc.TrackAppStarted("tui", connected)

	chat := views.NewChatView()
	chat.SetDark(a.Store.Snapshot().DarkPalette)

	return &Model{
		app:               a,
		telemetry:         tc,
		keymap:            keymap,
		styles:            DefaultStyles(),
		ctx:               ctx,
		cancel:            cancel,
		updates:           updates,
		unsubscribe:       unsubscribe,
		dashboardView:     views.NewDashboardView(),
		filesView:         views.NewFilesView(),
		systemView:        views.NewSystemView(),
		chatView:          chat,
		settingsView:      views.NewSettingsView(),
		helpView:          views.NewHelpView(global),
		sessionStart:      time.Now(),
		ticker:            time.NewTicker(time.Second),
		quitConfirmDialog: newQuitDialog(),
	}
}

func newQuitDialog() *components.ConfirmDialog {
	return components.NewConfirmDialog("Quit CleanOS?", "Are you sure you want to exit?")
}

// trackViewNavigation tracks view changes for telemetry.
func (m *Model) trackViewNavigation(to store.View) {
	m.telemetry.TrackViewNavigated(string(to), string(m.currentView()))
	m.viewsVisited++
}

func (m *Model) currentView() store.View {
	return m.app.Store.Snapshot().CurrentView
}

// Init starts the background refresher and the initial loads.
func (m *Model) Init() tea.Cmd {
	m.tickChan = m.ticker.C

	go func() {
		_ = m.app.System.Run(m.ctx)
	}()

	return tea.Batch(
		m.tickCmd(),
		m.watchStoreCmd(),
		m.loadInventoryCmd(),
		m.loadLogInfoCmd(),
		m.loadDirsCmd(),
		m.loadDefinitionsCmd(),
	)
}

// watchStoreCmd waits for the next store change.
func (m *Model) watchStoreCmd() tea.Cmd {
	return func() tea.Msg {
		slice, ok := <-m.updates
		if !ok {
			return nil
		}
		return storeChangedMsg{slice: slice}
	}
}

// tickCmd returns a command that sends a tick message.
func (m *Model) tickCmd() tea.Cmd {
	return func() tea.Msg {
		<-m.tickChan
		return tickMsg{}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// Update handles all messages and user input.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()

	case storeChangedMsg:
		if msg.slice == store.SliceTheme {
			m.styles = DefaultStyles()
			m.chatView.SetDark(m.app.Store.Snapshot().DarkPalette)
		}
		if msg.slice == store.SliceSidebar {
			m.resize()
		}
		return m, m.watchStoreCmd()

	case tickMsg:
		m.systemView.SetError(m.app.System.Err())
		return m, m.tickCmd()

	case inventoryLoadedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("refresh: %w", msg.err))
		}

	case logInfoMsg:
		if msg.err == nil {
			m.systemView.SetLogInfo(msg.info)
		}

	case dirsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.filesView.SetDirs(msg.dirs)

	case definitionsLoadedMsg:
		m.settingsView.SetDefinitions(msg.defs)
		m.settingsView.SetCatalogInfo(m.catalogInfo(msg.defs))

	case scanDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.scansRun++
		m.setStatus(fmt.Sprintf("Scanned %s: %d files, %s", views.FormatPath(msg.dir),
			len(msg.files), aggregate.FormatSize(aggregate.TotalScannedSize(msg.files))))

	case duplicatesMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.filesView.SetDuplicates(msg.groups)
		m.setStatus(fmt.Sprintf("Found %d duplicate groups", len(msg.groups)))

	case analysisMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.filesView.SetAnalysis(msg.records)
		m.setStatus(fmt.Sprintf("Analyzed %d files", len(msg.records)))

	case chatReplyMsg:
		m.chatView.Finish(msg.reply, msg.err)
		m.telemetry.TrackChatSent(msg.provider, msg.err == nil)
		if msg.err == nil {
			m.chatsSent++
		}

	case providerTestedMsg:
		if msg.err != nil {
			m.settingsView.SetNotice(fmt.Sprintf("%s: connection failed", msg.provider))
		} else {
			m.settingsView.SetNotice(fmt.Sprintf("%s: connected", msg.provider))
		}

	case keyChangedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.telemetry.TrackProviderKeyChanged(msg.provider, msg.stored)
		if msg.stored {
			m.settingsView.SetNotice(msg.provider + ": key saved")
		} else {
			m.settingsView.SetNotice(msg.provider + ": key removed")
		}

	case catalogRefreshedMsg:
		m.telemetry.TrackCatalogRefreshed(msg.count, msg.err == nil)
		if msg.err != nil {
			m.setError(fmt.Errorf("catalog refresh: %w", msg.err))
			break
		}
		m.setStatus(fmt.Sprintf("Catalog refreshed: %d models", msg.count))
		return m, m.loadDefinitionsCmd()

	case updateCheckedMsg:
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case msg.info == nil:
			m.settingsView.SetNotice("CleanOS is up to date (" + m.app.Gateway.CurrentVersion() + ")")
		default:
			m.settingsView.SetNotice("Update available: " + msg.info.Version)
		}

	case cleanupDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("%s: %w", msg.title, msg.err))
			break
		}
		m.setStatus(msg.title + ": " + msg.result.Message)
		return m, m.loadInventoryCmd()
	}

	return m, nil
}

func (m *Model) resize() {
	contentWidth := m.width
	if !m.app.Store.Snapshot().SidebarCollapsed {
		contentWidth -= lipgloss.Width(m.styles.Sidebar.Render(""))
	}
	contentWidth = max(contentWidth-2, 20)
	contentHeight := max(m.height-4, 5)

	m.dashboardView.SetSize(contentWidth, contentHeight)
	m.filesView.SetSize(contentWidth, contentHeight)
	m.systemView.SetSize(contentWidth, contentHeight)
	m.chatView.SetSize(contentWidth, contentHeight)
	m.settingsView.SetSize(contentWidth, contentHeight)
	m.helpView.SetSize(m.width, m.height)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.trackSessionExit()
	m.shutdown()
	return tea.Quit
}

// shutdown stops background work. Safe to call more than once.
func (m *Model) shutdown() {
	m.cancel()
	m.ticker.Stop()
	m.unsubscribe()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// ctrl+c always quits immediately, "q" asks first
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.showingQuitConfirm {
		switch key {
		case "left", "right", "h", "l", "tab":
			m.quitConfirmDialog.Toggle()
		case "y", "Y":
			return m.quit()
		case "n", "N", "esc":
			m.showingQuitConfirm = false
		case "enter":
			if m.quitConfirmDialog.IsYesSelected() {
				return m.quit()
			}
			m.showingQuitConfirm = false
		}
		return nil
	}

	if m.showingHelp {
		if m.helpView.Update(key) {
			m.showingHelp = false
		}
		return nil
	}

	current := m.currentView()

	// Views with a focused text input get every key except view switching.
	capturing := current == store.ViewAIChat ||
		(current == store.ViewFiles && m.filesView.Capturing()) ||
		(current == store.ViewSettings && m.settingsView.Capturing())
	switch key {
	case "tab":
		if !m.filesView.Capturing() && !m.settingsView.Capturing() {
			return m.switchView(nextView(current, 1))
		}
	case "shift+tab":
		if !m.filesView.Capturing() && !m.settingsView.Capturing() {
			return m.switchView(nextView(current, -1))
		}
	}

	if !capturing {
		switch key {
		case "q":
			m.quitConfirmDialog.SelectNo()
			m.showingQuitConfirm = true
			return nil
		case "?":
			m.helpView.SetViewCommands(m.viewCommands(current))
			m.showingHelp = true
			return nil
		case "1", "2", "3", "4", "5":
			return m.switchView(store.Views[int(key[0]-'1')])
		case "ctrl+b":
			m.app.Store.ToggleSidebar()
			return nil
		case "r":
			m.setStatus("Refreshing…")
			m.app.System.Refresh(m.ctx)
			return tea.Batch(m.loadInventoryCmd(), m.loadLogInfoCmd())
		case "T":
			return m.cycleTheme()
		}
	}

	switch current {
	case store.ViewDashboard:
		return m.updateDashboard(key)
	case store.ViewFiles:
		return m.updateFiles(msg)
	case store.ViewSystem:
		m.systemView.Update(key)
	case store.ViewAIChat:
		return m.updateChat(msg)
	case store.ViewSettings:
		return m.updateSettings(msg)
	}
	return nil
}

// nextView returns the view step places away from v, wrapping around.
func nextView(v store.View, step int) store.View {
	idx := 0
	for i, candidate := range store.Views {
		if candidate == v {
			idx = i
			break
		}
	}
	n := len(store.Views)
	return store.Views[((idx+step)%n+n)%n]
}

func (m *Model) switchView(to store.View) tea.Cmd {
	if to == m.currentView() {
		return nil
	}
	m.trackViewNavigation(to)
	m.app.Store.SetCurrentView(to)

	if to == store.ViewAIChat {
		return m.chatView.Focus()
	}
	m.chatView.Blur()
	return nil
}

func (m *Model) viewCommands(v store.View) views.ViewCommands {
	switch v {
	case store.ViewDashboard:
		return m.dashboardView.GetKeyboardCommands()
	case store.ViewFiles:
		return m.filesView.GetKeyboardCommands()
	case store.ViewSystem:
		return m.systemView.GetKeyboardCommands()
	case store.ViewAIChat:
		return m.chatView.GetKeyboardCommands()
	case store.ViewSettings:
		return m.settingsView.GetKeyboardCommands()
	default:
		return views.ViewCommands{ViewName: "UNKNOWN VIEW"}
	}
}

func (m *Model) cycleTheme() tea.Cmd {
	next := store.ThemeDark
	switch m.app.Store.Snapshot().Theme {
	case store.ThemeDark:
		next = store.ThemeLight
	case store.ThemeLight:
		next = store.ThemeSystem
	}
	if err := m.app.SetTheme(m.ctx, next); err != nil {
		m.setError(err)
		return nil
	}
	m.telemetry.TrackSettingsChanged("theme")
	m.setStatus("Theme: " + string(next))
	return nil
}

func (m *Model) updateDashboard(key string) tea.Cmd {
	st := m.app.Store.Snapshot()
	if m.dashboardView.Update(key, st) != views.DashboardActionClean {
		return nil
	}
	rec, ok := m.dashboardView.SelectedRecommendation(st)
	if !ok {
		return nil
	}
	return m.cleanupCmd(rec)
}

func (m *Model) updateFiles(msg tea.KeyMsg) tea.Cmd {
	st := m.app.Store.Snapshot()
	action, cmd := m.filesView.Update(msg, st)

	switch action {
	case views.FilesActionToggle:
		if f, ok := m.filesView.CursorFile(st); ok {
			m.app.Store.ToggleFileSelection(f.ID)
		}
	case views.FilesActionSelectAll:
		m.app.Store.SelectAllFiles()
	case views.FilesActionDeselectAll:
		m.app.Store.DeselectAllFiles()
	case views.FilesActionScan:
		m.setStatus("Scanning " + views.FormatPath(m.filesView.CurrentDir()) + "…")
		return m.scanCmd(m.filesView.CurrentDir())
	case views.FilesActionAddDir:
		return m.addDirCmd(m.filesView.InputValue())
	case views.FilesActionRemoveDir:
		return m.removeDirCmd(m.filesView.CurrentDir())
	case views.FilesActionDuplicates:
		m.setStatus("Looking for duplicates…")
		return m.duplicatesCmd(st.ScannedFiles)
	case views.FilesActionAnalyze:
		provider := st.ActiveProviderID()
		if provider == "" {
			m.setStatus("Choose an AI provider in Settings first")
			return nil
		}
		records := st.SelectedRecords()
		paths := make([]string, len(records))
		for i, r := range records {
			paths[i] = r.Path
		}
		m.setStatus(fmt.Sprintf("Analyzing %d files with %s…", len(paths), provider))
		return m.analyzeCmd(provider, paths)
	}
	return cmd
}

func (m *Model) updateChat(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.chatView.Update(msg)

	switch action {
	case views.ChatActionSend:
		st := m.app.Store.Snapshot()
		provider := st.ActiveProviderID()
		if provider == "" {
			m.setStatus("Choose an AI provider in Settings first")
			return nil
		}
		status, _ := st.Provider(provider)
		message := m.chatView.Draft()
		history := m.chatView.Begin(message)
		return m.chatCmd(provider, status.Model, message, history)
	case views.ChatActionCopy:
		return m.copyReply()
	}
	return cmd
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.settingsView.Update(msg)
	def, ok := m.settingsView.SelectedProvider()
	if !ok {
		return cmd
	}

	switch action {
	case views.SettingsActionActivate:
		if err := m.app.SetActiveProvider(m.ctx, def.ID); err != nil {
			m.setError(err)
			return nil
		}
		m.telemetry.TrackSettingsChanged("default_provider")
		m.settingsView.SetNotice(def.Name + " is now the active provider")
	case views.SettingsActionTest:
		m.settingsView.SetNotice("Testing " + def.Name + "…")
		return m.testProviderCmd(def.ID)
	case views.SettingsActionNextModel:
		status, _ := m.app.Store.Snapshot().Provider(def.ID)
		current := status.Model
		if current == "" {
			current = def.DefaultModel
		}
		m.app.SetProviderModel(def.ID, views.NextModel(def, current))
	case views.SettingsActionStoreKey:
		return m.storeKeyCmd(def.ID, m.settingsView.KeyValue())
	case views.SettingsActionDeleteKey:
		return m.deleteKeyCmd(def.ID)
	case views.SettingsActionRefreshCatalog:
		m.setStatus("Refreshing model catalog…")
		return m.refreshCatalogCmd()
	case views.SettingsActionCheckUpdates:
		return m.checkUpdatesCmd()
	}
	return cmd
}

func (m *Model) catalogInfo(defs []models.ProviderDefinition) string {
	count := 0
	for _, d := range defs {
		count += len(d.Models)
	}
	info := fmt.Sprintf("%d models, %s", count, m.app.Catalog.State())
	if at := m.app.Catalog.FetchedAt(); !at.IsZero() {
		info += ", fetched " + humanize.Time(at)
	}
	return info
}

// trackSessionExit tracks session summary and app exit.
func (m *Model) trackSessionExit() {
	durationMs := time.Since(m.sessionStart).Milliseconds()
	m.telemetry.TrackSessionSummary(durationMs, m.viewsVisited, m.scansRun, m.chatsSent)
	m.telemetry.TrackAppExited("tui", durationMs, 0)
}

// View returns the current view as a string.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}
	if m.showingQuitConfirm {
		return m.quitConfirmDialog.CenteredView(m.width, m.height)
	}
	if m.showingHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Help.Render(m.helpView.View()))
	}

	st := m.app.Store.Snapshot()

	var content string
	switch st.CurrentView {
	case store.ViewDashboard:
		content = m.dashboardView.View(st)
	case store.ViewFiles:
		content = m.filesView.View(st)
	case store.ViewSystem:
		content = m.systemView.View(st)
	case store.ViewAIChat:
		content = m.chatView.View(st.ActiveProviderID())
	case store.ViewSettings:
		content = m.settingsView.View(st)
	default:
		content = "Unknown view"
	}
	content = lipgloss.NewStyle().Padding(0, 1).Render(content)

	body := content
	if !st.SidebarCollapsed {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(st), content)
	}
	body = lipgloss.NewStyle().Height(max(m.height-3, 1)).MaxHeight(max(m.height-3, 1)).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(st), body, m.renderFooter())
}

func (m *Model) renderHeader(st *store.State) string {
	tabs := []string{m.styles.HeaderTitle.Render(design.LogoMinimal)}
	for i, v := range store.Views {
		label := fmt.Sprintf("%d %s", i+1, viewTitles[v])
		if v == st.CurrentView {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return m.styles.Header.Width(max(m.width, 1)).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) renderSidebar(st *store.State) string {
	sum := aggregate.Summarize(st)
	lines := []string{
		m.styles.Bold.Render("Disk"),
		lipgloss.NewStyle().Foreground(theme.LevelColor(sum.DiskLevel)).Render(fmt.Sprintf("%d%% used", sum.DiskPercent)),
		"",
		m.styles.Bold.Render("Files"),
		fmt.Sprintf("%d scanned", sum.FileCount),
		fmt.Sprintf("%d selected", sum.SelectedCount),
		"",
		m.styles.Bold.Render("Reclaimable"),
		aggregate.FormatBytes(sum.TotalReclaimable),
		"",
		m.styles.Bold.Render("Provider"),
	}
	if id := st.ActiveProviderID(); id != "" {
		lines = append(lines, id)
	} else {
		lines = append(lines, m.styles.Muted.Render("none"))
	}
	if st.IsScanning {
		lines = append(lines, "", m.styles.StatusInfo.Render("scanning…"))
	}
	return m.styles.Sidebar.Height(max(m.height-4, 1)).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	left := m.styles.Muted.Render(m.keymap.QuickHelpText())
	if m.status != "" {
		style := m.styles.StatusInfo
		if m.statusErr {
			style = m.styles.StatusError
		}
		left = style.Render(views.Truncate(m.status, max(m.width-4, 10)))
	}
	return m.styles.Footer.Width(max(m.width, 1)).Render(left)
}

// Run executes the TUI program over a.
func Run(a *app.App, tc telemetry.Client) error {
	model := NewModel(a, tc)
	defer model.shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
