package telemetry

import (
	"runtime"

	"github.com/cleanos-ai/cleanos/pkg/version"
)

// Event names - CLI
const (
	EventCLICommandExecuted = "cli_command_executed"
	EventCLIErrorOccurred   = "cli_error_occurred"
)

// Event names - TUI
const (
	EventViewNavigated = "view_navigated"
	EventReplyCopied   = "reply_copied"
)

// Event names - domain
const (
	EventScanCompleted      = "scan_completed"
	EventCatalogRefreshed   = "catalog_refreshed"
	EventCleanupRequested   = "cleanup_requested"
	EventProviderKeyChanged = "provider_key_changed"
	EventSettingsChanged    = "settings_changed"
	EventChatSent           = "chat_sent"
)

// Event names - lifecycle
const (
	EventAppStarted     = "app_started"
	EventAppExited      = "app_exited"
	EventSessionSummary = "session_summary"
)

// baseProperties returns common properties for all events.
// No file paths, hostnames or key material are ever attached.
func baseProperties() map[string]interface{} {
	return map[string]interface{}{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"version":    version.Short(),
		"prerelease": version.IsPrerelease(),
		"dev_build":  version.IsDevBuild(),
	}
}

func (c *posthogClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64) {
	props := baseProperties()
	props["command_name"] = commandName
	props["has_flags"] = hasFlags
	props["duration_ms"] = durationMs
	c.Track(EventCLICommandExecuted, props)
}

func (c *posthogClient) TrackCLIError(commandName, errorType string) {
	props := baseProperties()
	props["command_name"] = commandName
	props["error_type"] = errorType
	c.Track(EventCLIErrorOccurred, props)
}

func (c *posthogClient) TrackViewNavigated(viewName, previousView string) {
	props := baseProperties()
	props["view_name"] = viewName
	props["previous_view"] = previousView
	c.Track(EventViewNavigated, props)
}

func (c *posthogClient) TrackReplyCopied(provider string) {
	props := baseProperties()
	props["provider"] = provider
	c.Track(EventReplyCopied, props)
}

func (c *posthogClient) TrackScanCompleted(fileCount int, totalBytes int64, durationMs int64) {
	props := baseProperties()
	props["file_count"] = fileCount
	props["total_bytes"] = totalBytes
	props["duration_ms"] = durationMs
	c.Track(EventScanCompleted, props)
}

func (c *posthogClient) TrackCatalogRefreshed(modelCount int, succeeded bool) {
	props := baseProperties()
	props["model_count"] = modelCount
	props["succeeded"] = succeeded
	c.Track(EventCatalogRefreshed, props)
}

func (c *posthogClient) TrackCleanupRequested(target string, supported bool) {
	props := baseProperties()
	props["target"] = target
	props["supported"] = supported
	c.Track(EventCleanupRequested, props)
}

func (c *posthogClient) TrackProviderKeyChanged(provider string, stored bool) {
	props := baseProperties()
	props["provider"] = provider
	props["stored"] = stored
	c.Track(EventProviderKeyChanged, props)
}

func (c *posthogClient) TrackSettingsChanged(settingName string) {
	props := baseProperties()
	props["setting_name"] = settingName
	c.Track(EventSettingsChanged, props)
}

func (c *posthogClient) TrackChatSent(provider string, succeeded bool) {
	props := baseProperties()
	props["provider"] = provider
	props["succeeded"] = succeeded
	c.Track(EventChatSent, props)
}

func (c *posthogClient) TrackAppStarted(mode string, providersConfigured int) {
	props := baseProperties()
	props["mode"] = mode
	props["providers_configured"] = providersConfigured
	c.Track(EventAppStarted, props)
}

func (c *posthogClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int) {
	props := baseProperties()
	props["mode"] = mode
	props["session_duration_ms"] = sessionDurationMs
	props["commands_run"] = commandsRun
	c.Track(EventAppExited, props)
}

func (c *posthogClient) TrackSessionSummary(durationMs int64, viewsVisited, scansRun, chatsSent int) {
	props := baseProperties()
	props["duration_ms"] = durationMs
	props["views_visited"] = viewsVisited
	props["scans_run"] = scansRun
	props["chats_sent"] = chatsSent
	c.Track(EventSessionSummary, props)
}

// --- No-op implementations ---

func (c *noopClient) TrackCLICommandExecuted(commandName string, hasFlags bool, durationMs int64)  {}
func (c *noopClient) TrackCLIError(commandName, errorType string)                                  {}
func (c *noopClient) TrackViewNavigated(viewName, previousView string)                             {}
func (c *noopClient) TrackReplyCopied(provider string)                                             {}
func (c *noopClient) TrackScanCompleted(fileCount int, totalBytes int64, durationMs int64)         {}
func (c *noopClient) TrackCatalogRefreshed(modelCount int, succeeded bool)                         {}
func (c *noopClient) TrackCleanupRequested(target string, supported bool)                          {}
func (c *noopClient) TrackProviderKeyChanged(provider string, stored bool)                         {}
func (c *noopClient) TrackSettingsChanged(settingName string)                                      {}
func (c *noopClient) TrackChatSent(provider string, succeeded bool)                                {}
func (c *noopClient) TrackAppStarted(mode string, providersConfigured int)                         {}
func (c *noopClient) TrackAppExited(mode string, sessionDurationMs int64, commandsRun int)         {}
func (c *noopClient) TrackSessionSummary(durationMs int64, viewsVisited, scansRun, chatsSent int) {}
