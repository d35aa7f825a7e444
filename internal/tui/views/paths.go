package views

import (
	"os"
	"path/filepath"
	"strings"
)

// userHomeDir is swapped out in tests.
var userHomeDir = os.UserHomeDir

// FormatPath shortens a path for display by writing the home directory
// as "~". Only whole path segments match, so /home/al is not a prefix of
// /home/alice.
func FormatPath(path string) string {
	if path == "" {
		return path
	}

	home, err := userHomeDir()
	if err != nil || home == "" {
		return path
	}
	home = filepath.Clean(home)

	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~/" + rest
	}
	return path
}
