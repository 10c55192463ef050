// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for storefront-go. It supports a
// four-layer override chain (defaults -> config file -> environment -> CLI
// flags).
package config

// Config is the top-level configuration structure parsed from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api" json:"api"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
	Uploads UploadsConfig `toml:"uploads" json:"uploads"`
}

// APIConfig controls how the client reaches the backend. Timeout applies
// uniformly to every request; there is no per-request override.
type APIConfig struct {
	BaseURL   string `toml:"base_url" json:"base_url" validate:"required,url,startswith=http"`
	Timeout   string `toml:"timeout" json:"timeout"`
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// StorageConfig selects where credentials persist between invocations.
// An empty path resolves to a backend-specific file in the data directory.
type StorageConfig struct {
	Backend string `toml:"backend" json:"backend" validate:"oneof=file sqlite memory"`
	Path    string `toml:"path" json:"path"`
}

// LoggingConfig controls log output: level and handler format.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" json:"log_format" validate:"oneof=text json"`
}

// UploadsConfig controls image uploads. max_image_size is checked locally
// before any bytes are sent.
type UploadsConfig struct {
	ParallelUploads int    `toml:"parallel_uploads" json:"parallel_uploads" validate:"min=1,max=16"`
	MaxImageSize    string `toml:"max_image_size" json:"max_image_size"`
}

// CLIOverrides holds values from CLI flags that override config file and
// environment settings. Empty strings mean "not specified".
type CLIOverrides struct {
	ConfigPath string // --config
	BaseURL    string // --base-url
	Timeout    string // --timeout
}
