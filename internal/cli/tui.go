package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/telemetry"
	"github.com/cleanos-ai/cleanos/internal/tui"
	"github.com/cleanos-ai/cleanos/internal/tui/design"
	"github.com/cleanos-ai/cleanos/pkg/version"
)

// runTUI executes the TUI when no subcommand is specified.
func runTUI(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.close()

	printBanner()
	log.Debugf("%s\n", version.Info())

	paths := config.GetPaths(e.cfg)
	log.Printf("\n\U0001F4C1 Base directory: %s\n", e.cfg.BaseDir)
	log.Printf("\U0001F4C1 Database: %s\n", paths.Database)
	log.Printf("\U0001F4C1 Log file: %s/cleanos.log\n", paths.Logs)

	st := e.app.Store.Snapshot()
	connected := 0
	for _, p := range st.Providers {
		if p.Connected {
			connected++
		}
	}
	log.Printf("\n\U0001F916 AI providers connected: %d of %d\n", connected, len(st.Providers))
	if id := st.ActiveProviderID(); id != "" {
		log.Printf("   Active: %s\n", id)
	} else {
		log.Println("   None active (run 'cleanos key set' or add one in Settings)")
	}

	if telemetry.IsEnabled() {
		log.Println("\n\U0001F4CA Telemetry: ON (set CLEANOS_TELEMETRY_TRACKING_ENABLED=false to disable)")
		log.Printf("   Anon ID: %s\n", e.db.GetOrCreateTrackingID())
	} else {
		log.Println("\n\U0001F4CA Telemetry: OFF")
	}

	log.Println("\n\U0001F9F9 Launching CleanOS TUI...")
	log.Quiet()

	return tui.Run(e.app, telemetryClient)
}

func printBanner() {
	logo := lipgloss.NewStyle().Foreground(lipgloss.Color(design.LogoColorPrimary)).Bold(true)
	tagline := lipgloss.NewStyle().Foreground(lipgloss.Color(design.LogoColorAccent))

	fmt.Println(logo.Render(design.Logo))
	fmt.Println("   " + tagline.Render(design.Tagline))
	fmt.Printf("   Version: %s\n", version.Short())
}
