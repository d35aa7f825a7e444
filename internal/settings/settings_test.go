package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
)

type memStore struct {
	values map[string]string
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Setting(ctx context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) SetSetting(ctx context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func TestScanDirectories_Defaults(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	dirs, err := ScanDirectories(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"~/Documents", "~/Downloads", "~/Desktop"}, dirs)

	s.values[models.SettingScanDirectories] = "not json"
	dirs, err = ScanDirectories(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, DefaultScanDirectories, dirs)

	s.values[models.SettingScanDirectories] = "null"
	dirs, err = ScanDirectories(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, DefaultScanDirectories, dirs)

	// Callers may modify the result without touching the defaults.
	dirs[0] = "/changed"
	assert.Equal(t, "~/Documents", DefaultScanDirectories[0])
}

func TestScanDirectories_StoredEmptyList(t *testing.T) {
	s := newMemStore()
	s.values[models.SettingScanDirectories] = "[]"

	dirs, err := ScanDirectories(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestAddScanDirectory(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	dirs, err := AddScanDirectory(ctx, s, "/srv/media")
	require.NoError(t, err)
	assert.Equal(t, []string{"~/Documents", "~/Downloads", "~/Desktop", "/srv/media"}, dirs)
	assert.JSONEq(t, `["~/Documents","~/Downloads","~/Desktop","/srv/media"]`, s.values[models.SettingScanDirectories])

	dirs, err = AddScanDirectory(ctx, s, "/srv/media")
	require.NoError(t, err)
	assert.Len(t, dirs, 4)

	_, err = AddScanDirectory(ctx, s, "  ")
	assert.Error(t, err)
}

func TestRemoveScanDirectory(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	dirs, err := RemoveScanDirectory(ctx, s, "~/Downloads")
	require.NoError(t, err)
	assert.Equal(t, []string{"~/Documents", "~/Desktop"}, dirs)

	dirs, err = RemoveScanDirectory(ctx, s, "/not/listed")
	require.NoError(t, err)
	assert.Equal(t, []string{"~/Documents", "~/Desktop"}, dirs)

	stored, err := ScanDirectories(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, dirs, stored)
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	theme, err := Theme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, store.ThemeDark, theme)

	require.NoError(t, SetTheme(ctx, s, store.ThemeLight))
	theme, err = Theme(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, store.ThemeLight, theme)
}

func TestDefaultProvider(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	id, err := DefaultProvider(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, SetDefaultProvider(ctx, s, "claude"))
	id, err = DefaultProvider(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "claude", id)
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := &memStore{values: map[string]string{}, err: errors.New("database is locked")}

	_, err := ScanDirectories(ctx, s)
	assert.ErrorContains(t, err, "database is locked")
	_, err = AddScanDirectory(ctx, s, "/x")
	assert.Error(t, err)
	assert.Error(t, SetTheme(ctx, s, store.ThemeDark))
}
