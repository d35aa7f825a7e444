package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory name under the XDG data home.
const AppDirName = "cleanos-ai"

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Logs     string // Log directory
	Config   string // Config file (may not exist)
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	configPath, ok := findConfigFile(cfg.BaseDir)
	if !ok {
		configPath = filepath.Join(cfg.BaseDir, configFileNames[0])
	}
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "cleanos.db"),
		Logs:     cfg.BaseDir,
		Config:   configPath,
	}
}

// DefaultBaseDir returns the default base directory ($XDG_DATA_HOME/cleanos-ai).
func DefaultBaseDir() string {
	if xdg.DataHome != "" {
		return filepath.Join(xdg.DataHome, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppDirName
	}
	return filepath.Join(home, "."+AppDirName)
}

var configFileNames = []string{"config.yaml", "config.yml", "config.json", "config.toml"}

func findConfigFile(dir string) (string, bool) {
	for _, name := range configFileNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}
