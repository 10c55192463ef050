package config

import (
	"log/slog"
	"os"
)

// Environment variable names for overrides.
const (
	EnvConfig  = "STOREFRONT_CONFIG"
	EnvBaseURL = "STOREFRONT_BASE_URL"
	EnvTimeout = "STOREFRONT_TIMEOUT"
	EnvStorage = "STOREFRONT_STORAGE"
)

// EnvOverrides holds values derived from environment variables.
type EnvOverrides struct {
	ConfigPath string // STOREFRONT_CONFIG: override config file path
	BaseURL    string // STOREFRONT_BASE_URL: backend base URL
	Timeout    string // STOREFRONT_TIMEOUT: request timeout (Go duration)
	Storage    string // STOREFRONT_STORAGE: credential backend
}

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify the Config; Resolve applies them.
func ReadEnvOverrides(logger *slog.Logger) EnvOverrides {
	overrides := EnvOverrides{
		ConfigPath: os.Getenv(EnvConfig),
		BaseURL:    os.Getenv(EnvBaseURL),
		Timeout:    os.Getenv(EnvTimeout),
		Storage:    os.Getenv(EnvStorage),
	}

	if logger != nil {
		logger.Debug("read environment overrides",
			slog.String("config_path", overrides.ConfigPath),
			slog.String("base_url", overrides.BaseURL),
			slog.String("timeout", overrides.Timeout),
			slog.String("storage", overrides.Storage),
		)
	}

	return overrides
}
