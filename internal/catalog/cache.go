// Package catalog caches the third-party model catalog. Reads inside the
// TTL are served from memory; a stale read refetches and falls back to the
// previous collection when the fetch fails or returns nothing.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/task"
)

// DefaultTTL is how long a fetched catalog is served without refetching.
const DefaultTTL = time.Hour

// ErrEmptyCatalog is returned by Refresh when the fetch parsed to zero models.
var ErrEmptyCatalog = errors.New("catalog returned no models")

// Fetcher retrieves the raw catalog payload.
type Fetcher interface {
	FetchModelCatalog(ctx context.Context) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (string, error)

// FetchModelCatalog calls f.
func (f FetcherFunc) FetchModelCatalog(ctx context.Context) (string, error) {
	return f(ctx)
}

// State is the lifecycle state of the cache entry.
type State int

const (
	StateEmpty State = iota
	StateValid
	StateStale
	StateInvalidated
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateValid:
		return "valid"
	case StateStale:
		return "stale"
	case StateInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache is a TTL cache over a Fetcher. It is safe for concurrent use.
// Concurrent stale reads may each fetch; no lock is held during a fetch.
// Every fetch is numbered, and a result is written only if no newer fetch
// has been written already.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	seq     task.Sequencer

	mu          sync.Mutex
	models      []ModelDescriptor
	fetchedAt   time.Time
	hasEntry    bool
	invalidated bool
	written     uint64
}

// New creates an empty cache over f.
func New(f Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: f,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current lifecycle state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cache) stateLocked() State {
	switch {
	case !c.hasEntry:
		return StateEmpty
	case c.invalidated:
		return StateInvalidated
	case c.now().Sub(c.fetchedAt) < c.ttl:
		return StateValid
	default:
		return StateStale
	}
}

// FetchedAt returns the time of the last successful fetch, or the zero time.
func (c *Cache) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

// Models returns the catalog, fetching it when the entry is not valid.
// It never fails: when the fetch fails the previous collection is returned,
// which is empty if nothing was ever fetched.
func (c *Cache) Models(ctx context.Context) []ModelDescriptor {
	c.mu.Lock()
	if c.stateLocked() == StateValid {
		out := slices.Clone(c.models)
		c.mu.Unlock()
		catalogReads.WithLabelValues("hit").Inc()
		return out
	}
	c.mu.Unlock()
	catalogReads.WithLabelValues("miss").Inc()

	out, err := c.fetch(ctx)
	if err != nil {
		log.Debugf("catalog: serving cached models after fetch failure: %v", err)
	}
	return out
}

// Refresh marks the entry invalidated and fetches. On failure the previous
// collection is returned together with the error, and the entry stays
// invalidated so the next read fetches again.
func (c *Cache) Refresh(ctx context.Context) ([]ModelDescriptor, error) {
	c.mu.Lock()
	if c.hasEntry {
		c.invalidated = true
	}
	c.mu.Unlock()
	return c.fetch(ctx)
}

// RefreshAsync runs Refresh in the background.
func (c *Cache) RefreshAsync(ctx context.Context) *task.Task[[]ModelDescriptor] {
	return task.Go(ctx, c.Refresh)
}

// Invalidate marks the entry invalidated without fetching.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	if c.hasEntry {
		c.invalidated = true
	}
	c.mu.Unlock()
}

func (c *Cache) fetch(ctx context.Context) ([]ModelDescriptor, error) {
	n := c.seq.Next()

	raw, err := c.fetcher.FetchModelCatalog(ctx)
	if err != nil {
		catalogFetchFailures.WithLabelValues("error").Inc()
		return c.current(), fmt.Errorf("fetch model catalog: %w", err)
	}

	parsed := Parse(raw)
	if len(parsed) == 0 {
		catalogFetchFailures.WithLabelValues("empty").Inc()
		return c.current(), ErrEmptyCatalog
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n < c.written {
		catalogDiscarded.Inc()
		return slices.Clone(c.models), nil
	}
	c.models = parsed
	c.fetchedAt = c.now()
	c.hasEntry = true
	c.invalidated = false
	c.written = n
	catalogModels.Set(float64(len(parsed)))
	log.Debugf("catalog: cached %d models", len(parsed))
	return slices.Clone(parsed), nil
}

func (c *Cache) current() []ModelDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.models)
}
