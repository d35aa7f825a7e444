package version

import (
	"sync"

	"github.com/Masterminds/semver/v3"
)

var (
	parseMu        sync.Mutex
	parsedVersion  *semver.Version
	parseAttempted bool
)

// resetParsedVersion clears the cached parsed version for testing.
func resetParsedVersion() {
	parseMu.Lock()
	defer parseMu.Unlock()
	parsedVersion = nil
	parseAttempted = false
}

// Parsed returns the parsed semantic version, or nil if unparseable.
// The result is computed on first call and cached.
func Parsed() *semver.Version {
	parseMu.Lock()
	defer parseMu.Unlock()

	if parseAttempted {
		return parsedVersion
	}
	parseAttempted = true

	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	parsedVersion = v
	return parsedVersion
}

// IsPrerelease returns true if the current version is a pre-release.
// Returns false for unparseable versions (like "dev").
func IsPrerelease() bool {
	v := Parsed()
	if v == nil {
		return false
	}
	return v.Prerelease() != ""
}

// IsDevBuild returns true if this is a development build (no valid semver).
func IsDevBuild() bool {
	return Parsed() == nil
}

// Compare compares the current version to another version string.
// Returns: -1 if current < other, 0 if equal, 1 if current > other.
// Returns 0 if either version is unparseable.
func Compare(other string) int {
	current := Parsed()
	if current == nil {
		return 0
	}

	otherV, err := semver.NewVersion(other)
	if err != nil {
		return 0
	}

	return current.Compare(otherV)
}

// IsNewerThan returns true if the current version is newer than other.
// Returns false if either version is unparseable.
func IsNewerThan(other string) bool {
	return Compare(other) > 0
}

// UpdateAvailable reports whether latest is a newer release than the
// running build. Dev builds never report updates.
func UpdateAvailable(latest string) bool {
	return Compare(latest) < 0
}
