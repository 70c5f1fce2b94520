// ABOUTME: XDG Base Directory helpers and default tally paths
// ABOUTME: Resolves data and config directories with HOME fallbacks
package config

import (
	"os"
	"path/filepath"
)

const appName = "tally"

// GetDataHome returns XDG_DATA_HOME or fallback to ~/.local/share
func GetDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// DefaultDataFile is where the grid lives when nothing else is configured.
func DefaultDataFile() string {
	return filepath.Join(GetDataHome(), appName, "tally.toml")
}

// ConfigPath returns TALLY_CONFIG or the config.toml under the XDG config home.
func ConfigPath() string {
	if p := os.Getenv("TALLY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(GetConfigHome(), appName, "config.toml")
}
