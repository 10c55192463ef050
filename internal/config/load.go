package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Resolved is the effective configuration after all override layers, with
// string settings parsed into their runtime types.
type Resolved struct {
	Config

	ConfigPath      string        // file the config was read from, may not exist
	Timeout         time.Duration // parsed api.timeout
	MaxImageSize    int64         // parsed uploads.max_image_size, 0 = unlimited
	CredentialsPath string        // storage.path or the backend default
}

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal errors with "did you mean?"
// suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with all default values.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve loads configuration and applies the four-layer override chain:
// defaults -> config file -> environment variables -> CLI flags.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	cfg, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg, env)
	applyCLI(cfg, cli)

	// Overrides bypass the file-level check, so validate the merged result.
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return finish(cfg, cfgPath)
}

func applyEnv(cfg *Config, env EnvOverrides) {
	if env.BaseURL != "" {
		cfg.API.BaseURL = env.BaseURL
	}

	if env.Timeout != "" {
		cfg.API.Timeout = env.Timeout
	}

	if env.Storage != "" {
		cfg.Storage.Backend = env.Storage
	}
}

func applyCLI(cfg *Config, cli CLIOverrides) {
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}

	if cli.Timeout != "" {
		cfg.API.Timeout = cli.Timeout
	}
}

// finish parses the validated string settings into a Resolved.
func finish(cfg *Config, cfgPath string) (*Resolved, error) {
	timeout, err := parseTimeout(cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("api.timeout: %w", err)
	}

	maxSize, err := ParseSize(cfg.Uploads.MaxImageSize)
	if err != nil {
		return nil, fmt.Errorf("uploads.max_image_size: %w", err)
	}

	credPath := cfg.Storage.Path
	if credPath == "" {
		credPath = DefaultCredentialsPath(cfg.Storage.Backend)
	}

	return &Resolved{
		Config:          *cfg,
		ConfigPath:      cfgPath,
		Timeout:         timeout,
		MaxImageSize:    maxSize,
		CredentialsPath: credPath,
	}, nil
}
