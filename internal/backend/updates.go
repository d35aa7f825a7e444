package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/pkg/version"
)

// CurrentVersion returns the running build version.
func (b *Backend) CurrentVersion() string {
	return version.Short()
}

// CheckForUpdates reads the release manifest ({"version","date","body"})
// and returns it when it names a newer release. Without a manifest URL it
// returns nil.
func (b *Backend) CheckForUpdates(ctx context.Context) (*models.UpdateInfo, error) {
	const op = "check_for_updates"
	if b.updateURL == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.updateURL, nil)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, gateway.Wrap(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, gateway.Errorf(op, "update server returned HTTP %d", resp.StatusCode)
	}

	var info models.UpdateInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return nil, gateway.Wrap(op, fmt.Errorf("decode manifest: %w", err))
	}
	if !version.UpdateAvailable(info.Version) {
		return nil, nil
	}
	return &info, nil
}
