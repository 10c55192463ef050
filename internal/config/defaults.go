package config

import "github.com/tonimelisma/storefront-go/internal/api"

// Default values for configuration options: "layer 0" of the override
// chain.
const (
	defaultTimeout         = "30s"
	defaultStorageBackend  = "file"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultParallelUploads = 4
	defaultMaxImageSize    = "10MB"
)

// DefaultConfig returns a Config populated with all default values.
// It is the starting point for TOML decoding, so unset fields keep their
// defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   api.DefaultBaseURL,
			Timeout:   defaultTimeout,
			UserAgent: api.DefaultUserAgent,
		},
		Storage: StorageConfig{
			Backend: defaultStorageBackend,
		},
		Logging: LoggingConfig{
			LogLevel:  defaultLogLevel,
			LogFormat: defaultLogFormat,
		},
		Uploads: UploadsConfig{
			ParallelUploads: defaultParallelUploads,
			MaxImageSize:    defaultMaxImageSize,
		},
	}
}
