package cli

import (
	"context"
	"fmt"

	"github.com/cleanos-ai/cleanos/internal/app"
	"github.com/cleanos-ai/cleanos/internal/backend"
	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/db"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/tui"
)

// env is what a command runs against.
type env struct {
	cfg     *config.Config
	db      *db.DB
	backend *backend.Backend
	app     *app.App
	close   func()
}

// openEnv loads config, opens the database and builds the app over the
// local backend. Callers must call env.close. Tests replace it.
var openEnv = func(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs, cfg.Debug); err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	be := backend.New(database, cfg, backend.WithUpdateURL(cfg.UpdateURL))
	a := app.New(be, cfg, store.WithThemeHook(tui.ThemeHook))
	if err := a.Bootstrap(ctx); err != nil {
		log.Errorf("bootstrap: %v\n", err)
	}

	return &env{
		cfg:     cfg,
		db:      database,
		backend: be,
		app:     a,
		close: func() {
			if err := database.Close(); err != nil {
				log.Errorf("close database: %v\n", err)
			}
			_ = log.Close()
		},
	}, nil
}

// withEnv runs fn against a freshly opened env, tracking errors under name.
func withEnv(ctx context.Context, name string, fn func(e *env) error) error {
	e, err := openEnv(ctx)
	if err != nil {
		return trackCLIError(name, err)
	}
	defer e.close()
	return trackCLIError(name, fn(e))
}
