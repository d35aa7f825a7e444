package backend

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// SystemInfo reports host identity, memory and root filesystem usage.
func (b *Backend) SystemInfo(ctx context.Context) (*models.SystemSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, gateway.Wrap("get_system_info", err)
	}

	snap := &models.SystemSnapshot{
		Hostname: b.hostname(),
		OS:       b.osName(),
	}
	if err := b.fillPlatform(snap); err != nil {
		return nil, gateway.Wrap("get_system_info", err)
	}
	return snap, nil
}

func (b *Backend) hostname() string {
	if data, err := os.ReadFile(b.hostPath("/etc/hostname")); err == nil {
		if h := strings.TrimSpace(string(data)); h != "" {
			return h
		}
	}
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}

// osName returns PRETTY_NAME from os-release, or "Linux".
func (b *Backend) osName() string {
	f, err := os.Open(b.hostPath("/etc/os-release"))
	if err != nil {
		return "Linux"
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return "Linux"
}

// diskUsage converts statfs block counts into byte totals.
func diskUsage(blocks, free, avail, blockSize uint64) (total, used, available uint64) {
	total = blocks * blockSize
	available = avail * blockSize
	freeBytes := free * blockSize
	if freeBytes <= total {
		used = total - freeBytes
	}
	return total, used, available
}
