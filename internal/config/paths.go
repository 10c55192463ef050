package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tonimelisma/storefront-go/internal/tokenstore"
)

// Platform identifiers.
const (
	platformLinux  = "linux"
	platformDarwin = "darwin"
)

// Application directory name used across all platforms.
const appName = "storefront-go"

// File names inside the config and data directories.
const (
	configFileName      = "config.toml"
	credentialsFile     = "credentials.json"
	credentialsDatabase = "credentials.db"
)

// DefaultConfigDir returns the platform-specific directory for config files.
// On Linux, respects XDG_CONFIG_HOME (defaults to ~/.config/storefront-go).
// On macOS, uses ~/Library/Application Support/storefront-go.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case platformLinux:
		return xdgDir("XDG_CONFIG_HOME", home, ".config")
	case platformDarwin:
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultDataDir returns the platform-specific directory for credentials.
// On Linux, respects XDG_DATA_HOME (defaults to ~/.local/share/storefront-go).
// macOS collapses config and data into one directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case platformLinux:
		return xdgDir("XDG_DATA_HOME", home, filepath.Join(".local", "share"))
	case platformDarwin:
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		return filepath.Join(home, ".local", "share", appName)
	}
}

func xdgDir(envVar, home, fallback string) string {
	if xdg := os.Getenv(envVar); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	return filepath.Join(home, fallback, appName)
}

// DefaultConfigPath returns the full path to the default config file,
// used when neither STOREFRONT_CONFIG nor --config is given.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}

	return filepath.Join(dir, configFileName)
}

// DefaultCredentialsPath returns where backend keeps credentials when
// storage.path is unset. The memory backend has no path.
func DefaultCredentialsPath(backend string) string {
	dir := DefaultDataDir()
	if dir == "" {
		return ""
	}

	switch backend {
	case tokenstore.BackendMemory:
		return ""
	case tokenstore.BackendSQLite:
		return filepath.Join(dir, credentialsDatabase)
	default:
		return filepath.Join(dir, credentialsFile)
	}
}
