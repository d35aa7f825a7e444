package tui

import (
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/settings"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func (m *Model) loadInventoryCmd() tea.Cmd {
	return func() tea.Msg {
		return inventoryLoadedMsg{err: m.app.Inventory.LoadAll(m.ctx)}
	}
}

func (m *Model) loadLogInfoCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := m.app.Gateway.LogInfo(m.ctx)
		return logInfoMsg{info: info, err: err}
	}
}

func (m *Model) loadDirsCmd() tea.Cmd {
	return func() tea.Msg {
		dirs, err := settings.ScanDirectories(m.ctx, m.app.Gateway)
		return dirsLoadedMsg{dirs: dirs, err: err}
	}
}

func (m *Model) loadDefinitionsCmd() tea.Cmd {
	return func() tea.Msg {
		return definitionsLoadedMsg{defs: m.app.Directory.ProvidersWithModels(m.ctx)}
	}
}

func (m *Model) addDirCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		dirs, err := settings.AddScanDirectory(m.ctx, m.app.Gateway, dir)
		return dirsLoadedMsg{dirs: dirs, err: err}
	}
}

func (m *Model) removeDirCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		dirs, err := settings.RemoveScanDirectory(m.ctx, m.app.Gateway, dir)
		return dirsLoadedMsg{dirs: dirs, err: err}
	}
}

func (m *Model) scanCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		files, err := m.app.Inventory.Scan(m.ctx, dir)
		if err == nil {
			var bytes int64
			for _, f := range files {
				bytes += f.Size
			}
			m.telemetry.TrackScanCompleted(len(files), bytes, time.Since(start).Milliseconds())
		}
		return scanDoneMsg{dir: dir, files: files, err: err}
	}
}

func (m *Model) duplicatesCmd(files []models.FileRecord) tea.Cmd {
	return func() tea.Msg {
		groups, err := m.app.Gateway.FindDuplicates(m.ctx, files)
		return duplicatesMsg{groups: groups, err: err}
	}
}

func (m *Model) analyzeCmd(provider string, paths []string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.app.Gateway.AnalyzeFiles(m.ctx, provider, paths)
		return analysisMsg{records: records, err: err}
	}
}

func (m *Model) chatCmd(provider, model, message string, history []gateway.ChatTurn) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.app.Gateway.Chat(m.ctx, gateway.ChatRequest{
			Provider: provider,
			Model:    model,
			Message:  message,
			History:  history,
		})
		return chatReplyMsg{provider: provider, reply: reply, err: err}
	}
}

func (m *Model) testProviderCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return providerTestedMsg{provider: id, err: m.app.TestProvider(m.ctx, id)}
	}
}

func (m *Model) storeKeyCmd(id, key string) tea.Cmd {
	return func() tea.Msg {
		return keyChangedMsg{provider: id, stored: true, err: m.app.StoreKey(m.ctx, id, key)}
	}
}

func (m *Model) deleteKeyCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return keyChangedMsg{provider: id, stored: false, err: m.app.DeleteKey(m.ctx, id)}
	}
}

func (m *Model) refreshCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		descs, err := m.app.Catalog.Refresh(m.ctx)
		return catalogRefreshedMsg{count: len(descs), err: err}
	}
}

func (m *Model) checkUpdatesCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := m.app.Gateway.CheckForUpdates(m.ctx)
		return updateCheckedMsg{info: info, err: err}
	}
}

func (m *Model) cleanupCmd(rec models.CleanupRecommendation) tea.Cmd {
	m.setStatus("Cleaning " + rec.Title + "…")
	return func() tea.Msg {
		result, err := m.app.Clean(m.ctx, rec)
		m.telemetry.TrackCleanupRequested(rec.Category, !errors.Is(err, gateway.ErrUnsupported))
		return cleanupDoneMsg{title: rec.Title, result: result, err: err}
	}
}

func (m *Model) copyReply() tea.Cmd {
	reply, ok := m.chatView.LastReply()
	if !ok {
		m.setStatus("Nothing to copy yet")
		return nil
	}
	if err := clipboardWrite(reply); err != nil {
		m.setError(err)
		return nil
	}
	m.telemetry.TrackReplyCopied(m.app.Store.Snapshot().ActiveProviderID())
	m.setStatus("Reply copied to clipboard")
	return nil
}
