// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer file and environment overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DataDir is the directory holding the converted dataset JSON files.
	DataDir string `koanf:"data_dir"`

	// SaveDir is the directory save slots are written to.
	SaveDir string `koanf:"save_dir"`

	// DefaultYear is the season applied at startup when the datasets
	// cover it; otherwise the earliest available season is used.
	DefaultYear int `koanf:"default_year"`

	// MaxSaves caps how many save slots the API will list.
	MaxSaves int `koanf:"max_saves"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":8090",
		DataDir:     "data",
		SaveDir:     "saves",
		DefaultYear: 1980,
		MaxSaves:    50,
	}
}
