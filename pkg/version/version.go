// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
)

// These are set via ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ShortCommit returns the first seven characters of Commit.
func ShortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}

// Info returns a one-line build description for logs.
func Info() string {
	return fmt.Sprintf("cleanos %s (%s) built on %s with %s",
		Version, ShortCommit(), BuildDate, runtime.Version())
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Full returns all version details, one per line.
func Full() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Date: %s\nGo Version: %s\nOS/Arch: %s/%s",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
