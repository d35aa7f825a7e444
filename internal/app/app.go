// Package app wires the shared state store to a gateway. Every view
// surface (TUI, HTTP API, CLI) works through one App.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/catalog"
	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/providers"
	"github.com/cleanos-ai/cleanos/internal/refresh"
	"github.com/cleanos-ai/cleanos/internal/settings"
	"github.com/cleanos-ai/cleanos/internal/store"
)

// App bundles the state store with the services that fill it.
type App struct {
	Config    *config.Config
	Gateway   gateway.Gateway
	Store     *store.Store
	Catalog   *catalog.Cache
	Directory *providers.Directory
	System    *refresh.SystemRefresher
	Inventory *refresh.Inventory
}

// New creates an App over gw. opts are passed to the store.
func New(gw gateway.Gateway, cfg *config.Config, opts ...store.Option) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	st := store.New(opts...)
	cache := catalog.New(gw, catalog.WithTTL(cfg.Catalog.TTL))
	return &App{
		Config:    cfg,
		Gateway:   gw,
		Store:     st,
		Catalog:   cache,
		Directory: providers.NewDirectory(cache),
		System:    refresh.NewSystemRefresher(gw, st, cfg.Refresh.SystemInterval),
		Inventory: refresh.NewInventory(gw, st),
	}
}

// Bootstrap restores persisted preferences into the store and loads the
// provider status list. Failures are logged and returned joined; the
// store is usable either way.
func (a *App) Bootstrap(ctx context.Context) error {
	var errs []error

	if theme, err := settings.Theme(ctx, a.Gateway); err == nil {
		a.Store.SetTheme(theme)
	} else {
		errs = append(errs, err)
	}

	active, err := settings.DefaultProvider(ctx, a.Gateway)
	if err != nil {
		errs = append(errs, err)
	}
	if active == "" {
		active = a.Config.LLM.DefaultProvider
	}

	if err := a.Inventory.LoadProviders(ctx); err != nil {
		errs = append(errs, err)
	}
	if active == "" {
		active = a.firstConnected()
	}
	if active != "" {
		a.Store.SetActiveProvider(active)
	}

	err = errors.Join(errs...)
	if err != nil {
		log.Debugf("bootstrap: %v", err)
	}
	return err
}

func (a *App) firstConnected() string {
	for _, p := range a.Store.Snapshot().Providers {
		if p.Connected {
			return p.ID
		}
	}
	return ""
}

func defaultStatus(id string) models.ProviderStatus {
	return models.ProviderStatus{ID: id, Model: providers.DefaultModel(id)}
}

// SetTheme persists the theme and then applies it. A failed save leaves
// the store untouched.
func (a *App) SetTheme(ctx context.Context, theme store.Theme) error {
	if err := settings.SetTheme(ctx, a.Gateway, theme); err != nil {
		return err
	}
	a.Store.SetTheme(theme)
	return nil
}

// SetActiveProvider persists the active provider and then applies it. An
// empty id clears it. Unknown ids are accepted.
func (a *App) SetActiveProvider(ctx context.Context, id string) error {
	if err := settings.SetDefaultProvider(ctx, a.Gateway, id); err != nil {
		return err
	}
	if id == "" {
		a.Store.ClearActiveProvider()
	} else {
		a.Store.SetActiveProvider(id)
	}
	return nil
}

// SetProviderModel records the model chosen for a provider.
func (a *App) SetProviderModel(id, model string) {
	status, ok := a.Store.Snapshot().Provider(id)
	if !ok {
		status = defaultStatus(id)
	}
	status.Model = model
	a.Store.UpsertProviderStatus(status)
}

// StoreKey saves a provider key and refreshes that provider's status.
func (a *App) StoreKey(ctx context.Context, provider, key string) error {
	if _, ok := providers.Lookup(provider); !ok {
		return fmt.Errorf("unknown provider: %s", provider)
	}
	if err := a.Gateway.StoreAPIKey(ctx, provider, key); err != nil {
		return fmt.Errorf("store key: %w", err)
	}
	return a.Inventory.LoadProviders(ctx)
}

// DeleteKey removes a stored provider key and refreshes the status list.
func (a *App) DeleteKey(ctx context.Context, provider string) error {
	if err := a.Gateway.DeleteAPIKey(ctx, provider); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	return a.Inventory.LoadProviders(ctx)
}

// TestProvider checks the provider's key and records the outcome in its
// status entry.
func (a *App) TestProvider(ctx context.Context, id string) error {
	status, ok := a.Store.Snapshot().Provider(id)
	if !ok {
		status = defaultStatus(id)
	}
	err := a.Gateway.TestConnection(ctx, id, "", status.Model)
	status.Connected = err == nil
	status.Error = ""
	if err != nil {
		status.Error = gateway.Message(err)
	}
	a.Store.UpsertProviderStatus(status)
	return err
}

// Clean runs the cleanup operations behind a recommendation. Only the
// selected items of cache recommendations are cleaned. The first failure
// stops the run.
func (a *App) Clean(ctx context.Context, rec models.CleanupRecommendation) (*models.CleanupResult, error) {
	switch rec.Category {
	case models.RecommendLogs:
		return a.Gateway.CleanLogs(ctx)
	case models.RecommendDocker:
		return a.Gateway.CleanDocker(ctx, gateway.DockerAll)
	case models.RecommendPackageCache, models.RecommendBrowserCache:
		total := &models.CleanupResult{Success: true}
		for _, item := range rec.Items {
			if !item.Selected {
				continue
			}
			var res *models.CleanupResult
			var err error
			if rec.Category == models.RecommendPackageCache {
				res, err = a.Gateway.CleanPackageCache(ctx, item.Description)
			} else {
				res, err = a.Gateway.CleanBrowserCache(ctx, item.Description)
			}
			if err != nil {
				return nil, err
			}
			if res == nil {
				continue
			}
			total.SpaceFreed += res.SpaceFreed
		}
		total.Message = "freed " + aggregate.FormatBytes(total.SpaceFreed)
		return total, nil
	default:
		return nil, gateway.Unsupported("cleanup " + rec.Category)
	}
}
