// Package config provides configuration management for srsdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use SRSDB_ prefix with underscores for nesting:
//
//	SRSDB_CATALOG_BASELINE_PATH=/usr/share/srsdb/srs.db
//	SRSDB_SYNC_HOST=localhost
//	SRSDB_LOG_LEVEL=info
package config

// Config represents the complete srsdb configuration.
type Config struct {
	// Catalog contains paths to the two catalog tiers.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Sync contains PostGIS connection settings for the sync command.
	Sync SyncConfig `mapstructure:"sync" yaml:"sync"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// CatalogConfig locates the two catalog tiers on disk.
type CatalogConfig struct {
	// BaselinePath is the read-only authority catalog SQLite file.
	// An empty value means the file resides in the cache directory
	// under the default name.
	BaselinePath string `mapstructure:"baseline_path" yaml:"baseline_path"`

	// OverlayPath is the writable user catalog SQLite file. Created on
	// first registration if it does not exist.
	OverlayPath string `mapstructure:"overlay_path" yaml:"overlay_path"`
}

// SyncConfig contains PostGIS connection parameters for the external
// projection-definition source used by `srsdb sync`.
type SyncConfig struct {
	// Host is the PostGIS server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostGIS server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostGIS database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostGIS database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostGIS database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Catalog: CatalogConfig{
			BaselinePath: "",
			OverlayPath:  "",
		},
		Sync: SyncConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "gis",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}
	return res
}
