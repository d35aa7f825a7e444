package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/pkg/version"
)

var updateVerbose bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer CleanOS release is available",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVarP(&updateVerbose, "verbose", "v", false, "Also print build details")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "update", func(e *env) error {
		current := e.app.Gateway.CurrentVersion()
		if updateVerbose {
			_, _ = fmt.Fprintln(out, mutedStyle.Render(version.Full()))
			_, _ = fmt.Fprintln(out)
		}
		info, err := e.app.Gateway.CheckForUpdates(ctx)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if info == nil {
			_, _ = fmt.Fprintln(out, okStyle.Render("✓ CleanOS "+current+" is up to date"))
			return nil
		}

		heading(out, "CleanOS %s is available (you have %s)", info.Version, current)
		if info.Date != "" {
			_, _ = fmt.Fprintln(out, mutedStyle.Render("Released "+info.Date))
		}
		if info.Body != "" {
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, info.Body)
		}
		return nil
	})
}
