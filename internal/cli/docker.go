package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Show Docker images, containers, volumes and build cache",
	Args:  cobra.NoArgs,
	RunE:  runDocker,
}

var dockerPruneCmd = &cobra.Command{
	Use:   "prune [images|containers|volumes|build-cache|all]",
	Short: "Request a Docker cleanup",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDockerPrune,
}

func init() {
	dockerCmd.AddCommand(dockerPruneCmd)
}

func runDocker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withEnv(ctx, "docker", func(e *env) error {
		inv, err := e.app.Gateway.DockerInfo(ctx)
		if err != nil {
			return fmt.Errorf("docker info: %w", err)
		}
		if inv == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Docker is not available."))
			return nil
		}
		printDockerInventory(cmd, inv)
		return nil
	})
}

func printDockerInventory(cmd *cobra.Command, inv *models.ContainerInventory) {
	out := cmd.OutOrStdout()

	heading(out, "IMAGES (%d)", len(inv.Images))
	for _, img := range inv.Images {
		state := mutedStyle.Render("unused")
		if img.InUse {
			state = okStyle.Render("in use")
		}
		_, _ = fmt.Fprintf(out, "  %-40s %10s  %s\n", img.Repository+":"+img.Tag, aggregate.FormatBytes(img.Size), state)
	}

	_, _ = fmt.Fprintln(out)
	heading(out, "CONTAINERS (%d)", len(inv.Containers))
	for _, c := range inv.Containers {
		_, _ = fmt.Fprintf(out, "  %-24s %-24s %s\n", c.Name, c.Image, mutedStyle.Render(c.Status))
	}

	_, _ = fmt.Fprintln(out)
	heading(out, "VOLUMES (%d)", len(inv.Volumes))
	for _, v := range inv.Volumes {
		_, _ = fmt.Fprintf(out, "  %-40s %10s\n", v.Name, aggregate.FormatBytes(v.Size))
	}

	_, _ = fmt.Fprintf(out, "\n  Build cache: %s\n", aggregate.FormatBytes(inv.BuildCacheSize))
	_, _ = fmt.Fprintf(out, "  Reclaimable: %s\n", okStyle.Render(aggregate.FormatBytes(aggregate.UnusedContainerBytes(inv))))
}

func runDockerPrune(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	target := gateway.DockerAll
	if len(args) == 1 {
		t, ok := gateway.ParseDockerTarget(args[0])
		if !ok {
			return trackCLIError("docker prune", fmt.Errorf("invalid docker target: %s", args[0]))
		}
		target = t
	}

	return withEnv(ctx, "docker prune", func(e *env) error {
		res, err := e.app.Gateway.CleanDocker(ctx, target)
		notSupported := unsupported(out, err)
		telemetryClient.TrackCleanupRequested("docker:"+string(target), !notSupported)
		if notSupported {
			return nil
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, okStyle.Render("✓ "+res.Message))
		return nil
	})
}
