// Package backend implements gateway.Gateway against the local machine:
// the filesystem, the docker CLI, the settings database and the remote
// AI providers.
package backend

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"time"

	"golang.org/x/time/rate"

	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/db"
	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/llm"
)

var _ gateway.Gateway = (*Backend)(nil)

// CommandRunner runs an external program and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ProviderFactory builds an llm.Provider for a provider id.
type ProviderFactory func(id, apiKey, model string) (llm.Provider, error)

// Backend is the local gateway implementation.
type Backend struct {
	db         *db.DB
	cfg        *config.Config
	home       string
	runner     CommandRunner
	httpClient *http.Client
	limiter    *rate.Limiter
	providers  ProviderFactory
	updateURL  string
	hostRoot   string
}

// Option configures a Backend.
type Option func(*Backend)

// WithHome overrides the home directory used for well-known folders.
func WithHome(home string) Option {
	return func(b *Backend) { b.home = home }
}

// WithRunner replaces the command runner used for docker.
func WithRunner(r CommandRunner) Option {
	return func(b *Backend) { b.runner = r }
}

// WithHTTPClient replaces the client used for the catalog and update checks.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) { b.httpClient = c }
}

// WithProviderFactory replaces how AI providers are constructed.
func WithProviderFactory(f ProviderFactory) Option {
	return func(b *Backend) { b.providers = f }
}

// WithUpdateURL sets the release manifest checked by CheckForUpdates.
func WithUpdateURL(url string) Option {
	return func(b *Backend) { b.updateURL = url }
}

// WithHostRoot prefixes the absolute system paths (/etc, /proc, /var/log).
func WithHostRoot(root string) Option {
	return func(b *Backend) { b.hostRoot = root }
}

// New creates a Backend. database may be nil, in which case settings and
// credentials operations fail with a gateway error.
func New(database *db.DB, cfg *config.Config, opts ...Option) *Backend {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	home, _ := os.UserHomeDir()

	rpm := cfg.Catalog.RequestsPerMinute
	if rpm <= 0 {
		rpm = config.DefaultCatalogRPM
	}

	b := &Backend{
		db:         database,
		cfg:        cfg,
		home:       home,
		runner:     execRunner{},
		httpClient: &http.Client{Timeout: 30 * time.Second, Transport: &llm.HeaderTransport{Base: http.DefaultTransport}},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		providers:  llm.New,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// hostPath maps an absolute system path under the configured host root.
func (b *Backend) hostPath(p string) string {
	if b.hostRoot == "" {
		return p
	}
	return b.hostRoot + p
}
