package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "srsdb"

	// BaselineFileName is the default file name of the read-only
	// authority catalog tier.
	BaselineFileName = "srs.db"

	// OverlayFileName is the default file name of the writable user
	// catalog tier.
	OverlayFileName = "user_srs.db"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/srsdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/srsdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/srsdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/srsdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// BaselinePath resolves the baseline tier path, falling back to the
// default location in the cache directory when the config value is
// empty.
func (c *Config) BaselinePath() string {
	if c.Catalog.BaselinePath != "" {
		return c.Catalog.BaselinePath
	}
	return filepath.Join(CacheDir(c.HomeDir), BaselineFileName)
}

// OverlayPath resolves the overlay tier path, falling back to the
// default location in the cache directory when the config value is
// empty.
func (c *Config) OverlayPath() string {
	if c.Catalog.OverlayPath != "" {
		return c.Catalog.OverlayPath
	}
	return filepath.Join(CacheDir(c.HomeDir), OverlayFileName)
}
