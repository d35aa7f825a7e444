package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleanos-ai/cleanos/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API",
	Long: `Serve the local HTTP API used by web front ends. The API exposes the
shared state, aggregates and Prometheus metrics at /metrics.

The listen address defaults to the configured http.addr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withEnv(ctx, "serve", func(e *env) error {
		addr := serveAddr
		if addr == "" {
			addr = e.cfg.HTTP.Addr
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		httpapi.SetLogger(logger)

		go e.app.System.Run(ctx)

		_, _ = fmt.Fprintf(out, "Serving CleanOS API on http://%s\n", addr)
		return httpapi.Serve(ctx, addr, httpapi.NewMux(e.app, telemetryClient, e.cfg.HTTP.CORSOrigins))
	})
}
