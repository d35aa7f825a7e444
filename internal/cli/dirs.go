package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/settings"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "List the directories scanned by default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDirs(cmd, "dirs", func(e *env) ([]string, error) {
			return settings.ScanDirectories(cmd.Context(), e.app.Gateway)
		})
	},
}

var dirsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the directories scanned by default",
	Args:    cobra.NoArgs,
	RunE:    dirsCmd.RunE,
}

var dirsAddCmd = &cobra.Command{
	Use:   "add <dir>",
	Short: "Add a scan directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDirs(cmd, "dirs add", func(e *env) ([]string, error) {
			dirs, err := settings.AddScanDirectory(cmd.Context(), e.app.Gateway, args[0])
			if err == nil {
				telemetryClient.TrackSettingsChanged("scan_directories")
			}
			return dirs, err
		})
	},
}

var dirsRemoveCmd = &cobra.Command{
	Use:   "remove <dir>",
	Short: "Remove a scan directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDirs(cmd, "dirs remove", func(e *env) ([]string, error) {
			dirs, err := settings.RemoveScanDirectory(cmd.Context(), e.app.Gateway, args[0])
			if err == nil {
				telemetryClient.TrackSettingsChanged("scan_directories")
			}
			return dirs, err
		})
	},
}

func init() {
	dirsCmd.AddCommand(dirsListCmd, dirsAddCmd, dirsRemoveCmd)
}

func runDirs(cmd *cobra.Command, name string, fn func(e *env) ([]string, error)) error {
	out := cmd.OutOrStdout()
	return withEnv(cmd.Context(), name, func(e *env) error {
		dirs, err := fn(e)
		if err != nil {
			return err
		}
		heading(out, "SCAN DIRECTORIES (%d)", len(dirs))
		for _, d := range dirs {
			_, _ = fmt.Fprintf(out, "  %s\n", d)
		}
		return nil
	})
}
