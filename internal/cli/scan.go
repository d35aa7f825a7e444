package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/settings"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a folder and list what takes up space",
	Long: `Scan walks a folder and reports its largest files and a size
breakdown by category.

Without an argument every configured scan directory is scanned
(see 'cleanos dirs').

Examples:
  cleanos scan ~/Downloads
  cleanos scan --top 20 --duplicates
  cleanos scan --history`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var (
	scanTop        int
	scanDuplicates bool
	scanHistory    bool
)

func init() {
	scanCmd.Flags().IntVar(&scanTop, "top", 10, "Number of largest files to list")
	scanCmd.Flags().BoolVar(&scanDuplicates, "duplicates", false, "Also look for duplicate files")
	scanCmd.Flags().BoolVar(&scanHistory, "history", false, "Show recent scans instead of scanning")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "scan", func(e *env) error {
		if scanHistory {
			return printScanHistory(out, e)
		}

		dirs := args
		if len(dirs) == 0 {
			var err error
			dirs, err = settings.ScanDirectories(ctx, e.app.Gateway)
			if err != nil {
				return err
			}
		}

		for _, dir := range dirs {
			start := time.Now()
			files, err := scanDir(ctx, e, dir, out)
			if err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			total := aggregate.TotalScannedSize(files)
			telemetryClient.TrackScanCompleted(len(files), total, time.Since(start).Milliseconds())
			printScanReport(out, dir, files, scanTop)

			if scanDuplicates {
				groups, err := e.app.Gateway.FindDuplicates(ctx, files)
				if err != nil {
					return fmt.Errorf("find duplicates: %w", err)
				}
				printDuplicates(out, groups)
			}
		}
		return nil
	})
}

func printScanReport(w io.Writer, dir string, files []models.FileRecord, top int) {
	heading(w, "%s (%d entries, %s)", dir, len(files), aggregate.FormatSize(aggregate.TotalScannedSize(files)))

	byCategory := map[models.FileCategory]int64{}
	var regular []models.FileRecord
	for _, f := range files {
		if f.IsDirectory {
			continue
		}
		regular = append(regular, f)
		byCategory[f.Category] += f.Size
	}

	cats := make([]models.FileCategory, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return byCategory[cats[i]] > byCategory[cats[j]] })
	for _, c := range cats {
		name := string(c)
		if name == "" {
			name = "other"
		}
		_, _ = fmt.Fprintf(w, "  %-12s %10s\n", name, aggregate.FormatSize(byCategory[c]))
	}

	sort.Slice(regular, func(i, j int) bool { return regular[i].Size > regular[j].Size })
	if len(regular) > top {
		regular = regular[:top]
	}
	if len(regular) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, headingStyle.Render("Largest files"))
		for _, f := range regular {
			_, _ = fmt.Fprintf(w, "  %10s  %s\n", aggregate.FormatSize(f.Size), f.Path)
		}
	}
	_, _ = fmt.Fprintln(w)
}

func printDuplicates(w io.Writer, groups [][]models.FileRecord) {
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, okStyle.Render("✓ No duplicate files"))
		return
	}
	var wasted int64
	for _, g := range groups {
		wasted += g[0].Size * int64(len(g)-1)
	}
	heading(w, "Duplicates (%d groups, %s reclaimable)", len(groups), aggregate.FormatSize(wasted))
	for _, g := range groups {
		_, _ = fmt.Fprintf(w, "  %s × %d\n", aggregate.FormatSize(g[0].Size), len(g))
		for _, f := range g {
			_, _ = fmt.Fprintf(w, "    %s\n", mutedStyle.Render(f.Path))
		}
	}
	_, _ = fmt.Fprintln(w)
}

func printScanHistory(w io.Writer, e *env) error {
	if e.db == nil {
		return fmt.Errorf("scan history needs the local database")
	}
	scans, err := e.db.RecentScans(10)
	if err != nil {
		return fmt.Errorf("list scans: %w", err)
	}
	if len(scans) == 0 {
		_, _ = fmt.Fprintln(w, "No scans recorded yet.")
		return nil
	}

	heading(w, "RECENT SCANS")
	for _, s := range scans {
		_, _ = fmt.Fprintf(w, "  %-10s %-16s %8d files %10s  %s\n",
			s.Status, s.StartedAt.Format("2006-01-02 15:04"), s.FilesFound,
			aggregate.FormatSize(s.TotalSize), s.Root)
		if s.Error != "" {
			_, _ = fmt.Fprintf(w, "             %s\n", errorStyle.Render(s.Error))
		}
	}
	return nil
}

// scanDir prints live progress when scanning through the local backend.
func scanDir(ctx context.Context, e *env, dir string, out io.Writer) ([]models.FileRecord, error) {
	if e.backend == nil {
		return e.app.Gateway.ScanDirectory(ctx, dir)
	}
	defer ClearLine(out)
	return e.backend.ScanWithProgress(ctx, dir, func(p models.ScanProgress) {
		ClearLine(out)
		_, _ = fmt.Fprintf(out, "🔍 %d entries, %s", p.ScannedFiles, aggregate.FormatSize(p.BytesScanned))
	})
}
