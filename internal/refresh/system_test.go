package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/config"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/testutil"
)

func TestSystemRefresher_Refresh(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.System = &models.SystemSnapshot{Hostname: "box", MemoryTotal: 8}
	gw.Storage = &models.StorageBreakdown{Categories: []models.StorageCategory{{Name: "Documents", Size: 10}}}
	st := store.New()

	r := NewSystemRefresher(gw, st, time.Minute)
	_, err := r.Refresh(context.Background()).Wait(context.Background())
	require.NoError(t, err)
	assert.NoError(t, r.Err())

	snap := st.Snapshot()
	require.NotNil(t, snap.SystemInfo)
	assert.Equal(t, "box", snap.SystemInfo.Hostname)
	require.NotNil(t, snap.StorageBreakdown)
	assert.Equal(t, "Documents", snap.StorageBreakdown.Categories[0].Name)
}

func TestSystemRefresher_PartialFailure(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.System = &models.SystemSnapshot{Hostname: "box"}
	gw.StorageErr = errors.New("permission denied")
	st := store.New()
	st.SetStorageBreakdown(models.StorageBreakdown{TotalUsed: 42})

	r := NewSystemRefresher(gw, st, time.Minute)
	_, err := r.Refresh(context.Background()).Wait(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, r.Err(), "storage breakdown")

	snap := st.Snapshot()
	assert.Equal(t, "box", snap.SystemInfo.Hostname)
	assert.Equal(t, uint64(42), snap.StorageBreakdown.TotalUsed, "previous breakdown kept")

	gw.StorageErr = nil
	gw.Storage = &models.StorageBreakdown{TotalUsed: 7}
	_, err = r.Refresh(context.Background()).Wait(context.Background())
	require.NoError(t, err)
	assert.NoError(t, r.Err())
}

func TestSystemRefresher_DiscardsSupersededResult(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	gw := testutil.NewFakeGateway()
	gw.Storage = &models.StorageBreakdown{}
	gw.SystemHook = func(ctx context.Context) (*models.SystemSnapshot, error) {
		if calls.Add(1) == 1 {
			<-release
			return &models.SystemSnapshot{Hostname: "old"}, nil
		}
		return &models.SystemSnapshot{Hostname: "new"}, nil
	}
	st := store.New()
	r := NewSystemRefresher(gw, st, time.Minute)
	ctx := context.Background()

	first := r.Refresh(ctx)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	second := r.Refresh(ctx)
	_, err := second.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", st.Snapshot().SystemInfo.Hostname)

	close(release)
	_, err = first.Wait(ctx)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.True(t, first.Superseded())
	assert.Equal(t, "new", st.Snapshot().SystemInfo.Hostname)
}

func TestSystemRefresher_Run(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.System = &models.SystemSnapshot{Hostname: "box"}
	gw.Storage = &models.StorageBreakdown{}
	st := store.New()

	r := NewSystemRefresher(gw, st, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return gw.Calls("SystemInfo") >= 3 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.NotNil(t, st.Snapshot().SystemInfo)
}

func TestNewSystemRefresher_DefaultInterval(t *testing.T) {
	r := NewSystemRefresher(testutil.NewFakeGateway(), store.New(), 0)
	assert.Equal(t, config.DefaultSystemInterval, r.Interval())
}
