// Package refresh keeps store slices current by polling the gateway.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/log"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/task"
)

// ErrSuperseded is returned for a refresh whose result was dropped
// because a newer refresh was started while it ran.
var ErrSuperseded = errors.New("refresh superseded")

// SystemSource is the part of the gateway the system refresher polls.
type SystemSource interface {
	SystemInfo(ctx context.Context) (*models.SystemSnapshot, error)
	StorageBreakdown(ctx context.Context) (*models.StorageBreakdown, error)
}

// SystemRefresher periodically reloads the system snapshot and storage
// breakdown. Each refresh is numbered; a refresh that finishes after a
// newer one was started does not write to the store.
type SystemRefresher struct {
	src      SystemSource
	st       *store.Store
	interval time.Duration
	seq      task.Sequencer

	mu      sync.Mutex
	lastErr error
}

// NewSystemRefresher creates a refresher. A non-positive interval uses
// the configured default.
func NewSystemRefresher(src SystemSource, st *store.Store, interval time.Duration) *SystemRefresher {
	if interval <= 0 {
		interval = config.DefaultSystemInterval
	}
	return &SystemRefresher{src: src, st: st, interval: interval}
}

// Interval returns the polling interval.
func (r *SystemRefresher) Interval() time.Duration {
	return r.interval
}

// Err returns the error of the most recent completed refresh, or nil.
// Errors stay local to the refresher; they are never written to the store.
func (r *SystemRefresher) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *SystemRefresher) setErr(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// Refresh starts one refresh and returns its handle. Both calls run
// concurrently; whichever succeeds is written to the store.
func (r *SystemRefresher) Refresh(ctx context.Context) *task.Task[struct{}] {
	return task.GoSeq(ctx, &r.seq, func(ctx context.Context, n uint64) (struct{}, error) {
		info := task.Go(ctx, r.src.SystemInfo)
		storage := task.Go(ctx, r.src.StorageBreakdown)

		snap, infoErr := info.Wait(ctx)
		breakdown, storageErr := storage.Wait(ctx)

		if !r.seq.IsLatest(n) {
			log.Debugf("system refresh %d superseded by %d", n, r.seq.Latest())
			return struct{}{}, ErrSuperseded
		}

		if infoErr == nil && snap != nil {
			r.st.SetSystemInfo(*snap)
		}
		if storageErr == nil && breakdown != nil {
			r.st.SetStorageBreakdown(*breakdown)
		}

		var err error
		if infoErr != nil {
			err = fmt.Errorf("system info: %w", infoErr)
		}
		if storageErr != nil {
			err = errors.Join(err, fmt.Errorf("storage breakdown: %w", storageErr))
		}
		r.setErr(err)
		return struct{}{}, err
	})
}

// Run refreshes immediately and then on every tick until ctx is done.
func (r *SystemRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}
