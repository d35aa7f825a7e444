package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
)

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Show host, disk and memory usage",
	Long: `Show the host name, OS, disk and memory usage, a storage breakdown
of the well-known folders in your home directory, and the size of the
system logs.`,
	Args: cobra.NoArgs,
	RunE: runSysinfo,
}

func runSysinfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "sysinfo", func(e *env) error {
		info, err := e.app.Gateway.SystemInfo(ctx)
		if err != nil {
			return fmt.Errorf("system info: %w", err)
		}
		if info == nil {
			return fmt.Errorf("system info unavailable")
		}

		heading(out, "%s", info.Hostname)
		_, _ = fmt.Fprintf(out, "  OS:      %s\n", info.OS)
		if info.Kernel != "" {
			_, _ = fmt.Fprintf(out, "  Kernel:  %s\n", info.Kernel)
		}

		disk := NewProgressBar(100, 24)
		disk.Update(aggregate.DiskPercent(info), fmt.Sprintf("%s of %s",
			aggregate.FormatBytes(info.DiskUsed), aggregate.FormatBytes(info.DiskTotal)))
		memory := NewProgressBar(100, 24)
		memory.Update(aggregate.MemoryPercent(info), fmt.Sprintf("%s of %s",
			aggregate.FormatBytes(info.MemoryUsed), aggregate.FormatBytes(info.MemoryTotal)))
		_, _ = fmt.Fprintf(out, "  Disk:    %s\n", disk.RenderUsage())
		_, _ = fmt.Fprintf(out, "  Memory:  %s\n\n", memory.RenderUsage())

		breakdown, err := e.app.Gateway.StorageBreakdown(ctx)
		if err != nil {
			return fmt.Errorf("storage breakdown: %w", err)
		}
		if breakdown == nil {
			return nil
		}
		heading(out, "Storage (%s used, %s free)",
			aggregate.FormatBytes(breakdown.TotalUsed), aggregate.FormatBytes(breakdown.TotalAvailable))
		for _, s := range aggregate.StorageChart(breakdown) {
			bar := NewProgressBar(100, 20)
			bar.Update(s.Percent, "")
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
			_, _ = fmt.Fprintf(out, "  %s %-12s %10s  %s\n", swatch, s.Name, aggregate.FormatBytes(s.Size), bar.Render())
		}

		if logs, err := e.app.Gateway.LogInfo(ctx); err == nil {
			_, _ = fmt.Fprintf(out, "\n  %s: %s in %d files (%s)\n",
				logs.Name, aggregate.FormatBytes(logs.Size), logs.FileCount, logs.Path)
		}
		return nil
	})
}
