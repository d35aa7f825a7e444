// Package cli provides the command-line interface for CleanOS.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/telemetry"
	"github.com/cleanos-ai/cleanos/pkg/version"
)

var telemetryClient telemetry.Client = telemetry.New(nil)

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "cleanos",
	Short: "AI-assisted disk cleanup",
	Long: `AI-assisted disk cleanup

Scan folders, inspect system storage, Docker and package caches, and ask
an AI provider (Claude, OpenAI, Gemini or Kimi) what is safe to remove.

Run without arguments to launch the interactive TUI.

Telemetry:
  Telemetry is enabled by default, always anonymous, and will never track
  file names, paths, API keys or IP addresses.

  Opt-out with:
  	CLEANOS_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	RunE:         runTUI,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// The root command is the TUI, which tracks its own session.
		if cmd != cmd.Root() {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.CommandPath(), hasFlags, durationMs)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(sysinfoCmd)
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(cachesCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(dirsCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(updateCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc == nil {
		tc = telemetry.New(nil)
	}
	telemetryClient = tc

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	// Track app exit for CLI mode (non-TUI subcommands)
	if rootCmd.CalledAs() != "" && rootCmd.CalledAs() != rootCmd.Name() {
		durationMs := time.Since(commandStartTime).Milliseconds()
		telemetryClient.TrackAppExited("cli", durationMs, 1)
	}

	return err
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	errorType := classifyError(err)
	telemetryClient.TrackCLIError(cmdName, errorType)
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	errStr := err.Error()
	switch {
	case containsAny(errStr, "config", "configuration"):
		return "config_error"
	case containsAny(errStr, "database", "db"):
		return "database_error"
	case containsAny(errStr, "network", "timeout", "connection"):
		return "network_error"
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	case containsAny(errStr, "not supported", "unsupported"):
		return "unsupported_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
