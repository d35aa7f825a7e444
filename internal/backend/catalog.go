package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cleanos-ai/cleanos/internal/gateway"
)

// maxCatalogBytes bounds how much of the catalog response is read.
const maxCatalogBytes = 16 << 20

// FetchModelCatalog downloads the raw model catalog text. Requests are
// throttled to the configured rate; a non-2xx status is an error.
func (b *Backend) FetchModelCatalog(ctx context.Context) (string, error) {
	const op = "fetch_available_models"

	if err := b.limiter.Wait(ctx); err != nil {
		return "", gateway.Wrap(op, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.cfg.Catalog.URL, nil)
	if err != nil {
		return "", gateway.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", gateway.Wrap(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", gateway.Errorf(op, "catalog returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return "", gateway.Wrap(op, fmt.Errorf("read catalog: %w", err))
	}
	return string(body), nil
}
