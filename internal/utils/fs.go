package utils

import (
	"os"
	"path/filepath"
)

const appDirName = "linux-wallpaperparticles"

// ConfigSearchPaths lists the locations searched for a config file, in order.
func ConfigSearchPaths() []string {
	paths := []string{"particles.yaml", filepath.Join("config", "particles.yaml")}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appDirName, "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDirName, "config.yaml"))
	}
	paths = append(paths, filepath.Join("/etc", appDirName, "config.yaml"))

	return paths
}

// ResolveConfigPath returns the config file to load, or "" when none exists
// and the built-in defaults should be used.
func ResolveConfigPath(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			Info("Using config file: %s", customPath)
			return customPath
		}
		Warn("Custom config NOT FOUND: %s", customPath)
		Info("Falling back to automatic discovery...")
	}

	for _, p := range ConfigSearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			Info("Discovered config at: %s", p)
			return p
		}
	}

	Debug("No config file found, using defaults")
	return ""
}
