package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
)

var cachesCmd = &cobra.Command{
	Use:   "caches",
	Short: "Show package manager and browser caches with cleanup suggestions",
	Args:  cobra.NoArgs,
	RunE:  runCaches,
}

var cachesCleanCmd = &cobra.Command{
	Use:   "clean <recommendation-id>",
	Short: "Request the cleanup behind a recommendation",
	Long: `Request the cleanup behind a recommendation. Run "cleanos caches" to
list recommendation ids.`,
	Args: cobra.ExactArgs(1),
	RunE: runCachesClean,
}

func init() {
	cachesCmd.AddCommand(cachesCleanCmd)
}

func runCaches(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "caches", func(e *env) error {
		pkgs, err := e.app.Gateway.PackageCaches(ctx)
		if err != nil {
			return fmt.Errorf("package caches: %w", err)
		}
		heading(out, "PACKAGE CACHES (%s)", aggregate.FormatBytes(aggregate.PackageCacheBytes(pkgs)))
		printCacheEntries(cmd, pkgs)

		browsers, err := e.app.Gateway.BrowserCaches(ctx)
		if err != nil {
			return fmt.Errorf("browser caches: %w", err)
		}
		_, _ = fmt.Fprintln(out)
		heading(out, "BROWSER CACHES (%s)", aggregate.FormatBytes(aggregate.PackageCacheBytes(browsers)))
		printCacheEntries(cmd, browsers)

		recs, err := e.app.Gateway.CleanupRecommendations(ctx)
		if err != nil {
			return fmt.Errorf("cleanup recommendations: %w", err)
		}
		_, _ = fmt.Fprintln(out)
		heading(out, "RECOMMENDATIONS (%s reclaimable)", aggregate.FormatBytes(aggregate.ReclaimableSpace(recs)))
		if len(recs) == 0 {
			_, _ = fmt.Fprintln(out, mutedStyle.Render("  Nothing worth cleaning right now."))
		}
		for _, r := range recs {
			_, _ = fmt.Fprintf(out, "  %-24s %-32s %10s  %s\n",
				r.ID, r.Title, aggregate.FormatBytes(r.SpaceReclaimable), riskLabel(r.RiskLevel))
			if r.Description != "" {
				_, _ = fmt.Fprintf(out, "  %s\n", mutedStyle.Render(r.Description))
			}
		}
		return nil
	})
}

func printCacheEntries(cmd *cobra.Command, entries []models.PackageCacheEntry) {
	out := cmd.OutOrStdout()
	found := false
	for _, c := range entries {
		if !c.Exists {
			continue
		}
		found = true
		_, _ = fmt.Fprintf(out, "  %-12s %10s  %s\n", c.Manager, aggregate.FormatBytes(c.Size), mutedStyle.Render(c.Path))
	}
	if !found {
		_, _ = fmt.Fprintln(out, mutedStyle.Render("  none found"))
	}
}

func riskLabel(r models.RiskLevel) string {
	switch r {
	case models.RiskLow:
		return okStyle.Render(string(r) + " risk")
	case models.RiskMedium:
		return warnStyle.Render(string(r) + " risk")
	default:
		return errorStyle.Render(string(r) + " risk")
	}
}

func runCachesClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	id := strings.TrimSpace(args[0])

	return withEnv(ctx, "caches clean", func(e *env) error {
		recs, err := e.app.Gateway.CleanupRecommendations(ctx)
		if err != nil {
			return fmt.Errorf("cleanup recommendations: %w", err)
		}

		var rec *models.CleanupRecommendation
		for i := range recs {
			if recs[i].ID == id {
				rec = &recs[i]
				break
			}
		}
		if rec == nil {
			return fmt.Errorf("no recommendation with id %q", id)
		}

		res, err := e.app.Clean(ctx, *rec)
		notSupported := unsupported(out, err)
		telemetryClient.TrackCleanupRequested(rec.Category, !notSupported)
		if notSupported {
			return nil
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, okStyle.Render("✓ "+rec.Title+": "+res.Message))
		return nil
	})
}
