package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCatalogBaselinePath sets the path of the read-only authority
// catalog tier.
func OptCatalogBaselinePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Baseline Path", s) {
			c.Catalog.BaselinePath = s
		}
	}
}

// OptCatalogOverlayPath sets the path of the writable user catalog
// tier.
func OptCatalogOverlayPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Overlay Path", s) {
			c.Catalog.OverlayPath = s
		}
	}
}

// OptSyncHost sets the PostGIS server hostname or IP address.
func OptSyncHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sync Host", s) {
			c.Sync.Host = s
		}
	}
}

// OptSyncPort sets the PostGIS server port number.
func OptSyncPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Sync Port", i) {
			c.Sync.Port = i
		}
	}
}

// OptSyncUser sets the PostGIS database username.
func OptSyncUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sync User", s) {
			c.Sync.User = s
		}
	}
}

// OptSyncPassword sets the PostGIS database password.
func OptSyncPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sync Password", s) {
			c.Sync.Password = s
		}
	}
}

// OptSyncDatabase sets the PostGIS database name to connect to.
func OptSyncDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Sync Database", s) {
			c.Sync.Database = s
		}
	}
}

// OptSyncSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptSyncSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Sync.SSLMode", s) {
			c.Sync.SSLMode = s
		}
	}
}

// OptLogFormat sets the logging format ('json' or 'text').
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets the logging destination.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache and log paths.
// Runtime-only, never persisted to config.yaml.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
