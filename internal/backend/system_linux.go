//go:build linux

package backend

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"

	"github.com/cleanos-ai/cleanos/internal/models"
)

func (b *Backend) fillPlatform(snap *models.SystemSnapshot) error {
	snap.Kernel = b.kernelRelease()

	fs, err := procfs.NewFS(b.hostPath("/proc"))
	if err != nil {
		return fmt.Errorf("open procfs: %w", err)
	}
	mem, err := fs.Meminfo()
	if err != nil {
		return fmt.Errorf("read meminfo: %w", err)
	}
	if mem.MemTotal != nil {
		snap.MemoryTotal = *mem.MemTotal * 1024
	}
	if mem.MemAvailable != nil {
		snap.MemoryAvailable = *mem.MemAvailable * 1024
	}
	if snap.MemoryAvailable <= snap.MemoryTotal {
		snap.MemoryUsed = snap.MemoryTotal - snap.MemoryAvailable
	}

	var st unix.Statfs_t
	if err := unix.Statfs(b.hostPath("/"), &st); err != nil {
		return fmt.Errorf("statfs /: %w", err)
	}
	snap.DiskTotal, snap.DiskUsed, snap.DiskAvailable = diskUsage(st.Blocks, st.Bfree, st.Bavail, uint64(st.Bsize))
	return nil
}

// kernelRelease prefers /proc/version so a host root can be inspected,
// falling back to uname.
func (b *Backend) kernelRelease() string {
	if data, err := os.ReadFile(b.hostPath("/proc/version")); err == nil {
		if fields := strings.Fields(string(data)); len(fields) >= 3 {
			return fields[2]
		}
	}
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		return unix.ByteSliceToString(u.Release[:])
	}
	return "unknown"
}
