// Package settings persists user preferences through the gateway's
// key/value settings store.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
)

// Store is the subset of the gateway used for settings.
type Store interface {
	Setting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// DefaultScanDirectories is used when nothing valid is stored.
var DefaultScanDirectories = []string{"~/Documents", "~/Downloads", "~/Desktop"}

// ScanDirectories returns the configured scan roots. A missing or
// malformed value yields the defaults.
func ScanDirectories(ctx context.Context, s Store) ([]string, error) {
	raw, ok, err := s.Setting(ctx, models.SettingScanDirectories)
	if err != nil {
		return nil, fmt.Errorf("read scan directories: %w", err)
	}
	if !ok {
		return slices.Clone(DefaultScanDirectories), nil
	}
	var dirs []string
	if err := json.Unmarshal([]byte(raw), &dirs); err != nil || dirs == nil {
		return slices.Clone(DefaultScanDirectories), nil
	}
	return dirs, nil
}

// SetScanDirectories replaces the stored list.
func SetScanDirectories(ctx context.Context, s Store, dirs []string) error {
	if dirs == nil {
		dirs = []string{}
	}
	data, err := json.Marshal(dirs)
	if err != nil {
		return fmt.Errorf("encode scan directories: %w", err)
	}
	if err := s.SetSetting(ctx, models.SettingScanDirectories, string(data)); err != nil {
		return fmt.Errorf("save scan directories: %w", err)
	}
	return nil
}

// AddScanDirectory appends dir unless it is already listed and returns
// the resulting list.
func AddScanDirectory(ctx context.Context, s Store, dir string) ([]string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("directory is empty")
	}
	dirs, err := ScanDirectories(ctx, s)
	if err != nil {
		return nil, err
	}
	if slices.Contains(dirs, dir) {
		return dirs, nil
	}
	dirs = append(dirs, dir)
	return dirs, SetScanDirectories(ctx, s, dirs)
}

// RemoveScanDirectory drops dir from the list and returns the result.
// Removing an unlisted directory is not an error.
func RemoveScanDirectory(ctx context.Context, s Store, dir string) ([]string, error) {
	dirs, err := ScanDirectories(ctx, s)
	if err != nil {
		return nil, err
	}
	kept := slices.DeleteFunc(dirs, func(d string) bool { return d == dir })
	return kept, SetScanDirectories(ctx, s, kept)
}

// Theme returns the persisted theme, dark when unset.
func Theme(ctx context.Context, s Store) (store.Theme, error) {
	raw, _, err := s.Setting(ctx, models.SettingTheme)
	if err != nil {
		return store.ThemeDark, fmt.Errorf("read theme: %w", err)
	}
	return store.ParseTheme(raw), nil
}

// SetTheme persists theme.
func SetTheme(ctx context.Context, s Store, theme store.Theme) error {
	if err := s.SetSetting(ctx, models.SettingTheme, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// DefaultProvider returns the persisted provider choice, or "".
func DefaultProvider(ctx context.Context, s Store) (string, error) {
	raw, _, err := s.Setting(ctx, models.SettingDefaultProvider)
	if err != nil {
		return "", fmt.Errorf("read default provider: %w", err)
	}
	return raw, nil
}

// SetDefaultProvider persists the provider choice. An empty id clears it.
func SetDefaultProvider(ctx context.Context, s Store, id string) error {
	if err := s.SetSetting(ctx, models.SettingDefaultProvider, id); err != nil {
		return fmt.Errorf("save default provider: %w", err)
	}
	return nil
}
