// Package config loads the CLI configuration from defaults, an optional
// qbrankings.yaml, QBRANKINGS_-prefixed environment variables, and flags,
// in that order of increasing precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// RawDir is the staging directory for downloaded source pages.
	RawDir string `koanf:"raw_dir"`
	// Filter is the row inclusion expression. Empty means the default
	// quarterback-only predicate.
	Filter string `koanf:"filter"`
	// TeamXwalk is an optional override for the embedded mascot crosswalk.
	TeamXwalk string `koanf:"team_xwalk"`
	// Designations is the optional elite/system/fraud crosswalk file.
	Designations string `koanf:"designations"`
	Verbose      bool   `koanf:"verbose"`

	Store StoreConfig `koanf:"store"`
}

// StoreConfig selects the relational load target.
type StoreConfig struct {
	// Driver is one of "sqlite", "duckdb", "postgres".
	Driver string `koanf:"driver"`
	// Path is the database file for file-based drivers.
	Path string `koanf:"path"`
	// DSN is the postgres connection string. ${VAR} references are
	// expanded from the environment so credentials stay out of the file.
	DSN string `koanf:"dsn"`
}

// Default configuration values.
const (
	DefaultRawDir    = "data/raw"
	DefaultStorePath = "data/qbrankings.db"
	DefaultDriver    = "sqlite"
)
