package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show AI provider connection status",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "providers", func(e *env) error {
		st := e.app.Store.Snapshot()
		active := st.ActiveProviderID()

		heading(out, "AI PROVIDERS")
		for _, def := range providers.Providers() {
			status, _ := st.Provider(def.ID)
			marker := "  "
			if def.ID == active {
				marker = okStyle.Render("★ ")
			}
			state := mutedStyle.Render("no key")
			switch {
			case status.Error != "":
				state = errorStyle.Render("error: " + status.Error)
			case status.Connected:
				state = okStyle.Render("connected")
			}
			model := status.Model
			if model == "" {
				model = def.DefaultModel
			}
			_, _ = fmt.Fprintf(out, "%s%-12s %-20s %s  %s\n", marker, def.ID, def.Name, state, mutedStyle.Render(model))
		}
		if active == "" {
			_, _ = fmt.Fprintln(out, "\nNo active provider. Add a key with: cleanos key set <provider>")
		}
		return nil
	})
}
