// CleanOS - AI-assisted disk cleanup.
//
// Scans folders, inspects system storage, Docker and package caches, and
// asks an AI provider what is safe to remove, from a TUI, a CLI or a local
// HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cleanos-ai/cleanos/internal/cli"
	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/db"
	"github.com/cleanos-ai/cleanos/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleanos: load config: %v\n", err)
		os.Exit(1)
	}

	// The database holds the persistent anonymous tracking ID.
	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cleanos: open database: %v\n", err)
		os.Exit(1)
	}

	telemetryClient := telemetry.New(database)

	err = cli.Execute(ctx, telemetryClient)
	telemetryClient.Close()
	_ = database.Close()
	if err != nil {
		os.Exit(1)
	}
}
