package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
)

var modelsRefresh bool

var modelsCmd = &cobra.Command{
	Use:   "models [provider]",
	Short: "List the models each AI provider offers",
	Long: `List the models each AI provider offers. Models come from the remote
catalog when it is available and from a built-in table otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsRefresh, "refresh", false, "Refetch the model catalog first")
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "models", func(e *env) error {
		if modelsRefresh {
			descs, err := e.app.Catalog.Refresh(ctx)
			telemetryClient.TrackCatalogRefreshed(len(descs), err == nil)
			if err != nil {
				_, _ = fmt.Fprintln(out, warnStyle.Render("⚠ catalog refresh failed, showing built-in models: "+err.Error()))
			}
		}

		found := false
		for _, def := range e.app.Directory.ProvidersWithModels(ctx) {
			if len(args) == 1 && def.ID != args[0] {
				continue
			}
			found = true
			heading(out, "%s (%d models)", def.Name, len(def.Models))
			for _, m := range def.Models {
				marker := "  "
				if m.ID == def.DefaultModel {
					marker = okStyle.Render("★ ")
				}
				ctxLen := ""
				if m.MaxTokens > 0 {
					ctxLen = aggregate.FormatContextLength(m.MaxTokens) + " ctx"
				}
				_, _ = fmt.Fprintf(out, "%s%-44s %10s\n", marker, m.ID, mutedStyle.Render(ctxLen))
			}
			_, _ = fmt.Fprintln(out)
		}
		if !found && len(args) == 1 {
			return fmt.Errorf("unknown provider: %s", args[0])
		}

		state := e.app.Catalog.State().String()
		if at := e.app.Catalog.FetchedAt(); !at.IsZero() {
			state += ", fetched " + humanize.Time(at)
		}
		_, _ = fmt.Fprintln(out, mutedStyle.Render("catalog: "+state))
		return nil
	})
}
