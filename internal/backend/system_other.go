//go:build !linux

package backend

import (
	"runtime"

	"github.com/cleanos-ai/cleanos/internal/models"
)

// Memory and disk figures are only collected on Linux.
func (b *Backend) fillPlatform(snap *models.SystemSnapshot) error {
	snap.Kernel = runtime.GOOS
	return nil
}
