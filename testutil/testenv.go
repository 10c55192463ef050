// Package testutil provides shared test environment helpers for E2E tests.
// It depends only on stdlib so that E2E tests (which cannot import
// internal/) can use it.
package testutil

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables read by the E2E suite.
const (
	EnvE2EBaseURL      = "STOREFRONT_E2E_BASE_URL"
	EnvE2EAllowedHosts = "STOREFRONT_E2E_ALLOWED_HOSTS"
	EnvE2EEmail        = "STOREFRONT_E2E_EMAIL"
	EnvE2EPassword     = "STOREFRONT_E2E_PASSWORD"
)

// LoadDotEnv reads KEY=VALUE pairs from a .env file at the given path.
// A missing file is not an error (CI sets env vars directly). Existing env
// vars take precedence over .env values.
func LoadDotEnv(envPath string) {
	f, err := os.Open(envPath)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

// parseEnvLine splits one .env line, skipping blanks and comments. An
// optional "export " prefix and surrounding quotes are stripped.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}

	line = strings.TrimPrefix(line, "export ")

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}

	key = strings.TrimSpace(key)
	value = strings.Trim(strings.TrimSpace(value), "\"'")

	return key, value, key != ""
}

// BackendHostAllowed reports whether baseURL's host is listed in the
// comma-separated STOREFRONT_E2E_ALLOWED_HOSTS. E2E tests create and delete
// catalog entries, so they must never run against an unlisted backend.
func BackendHostAllowed(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%s=%q is not an absolute URL", EnvE2EBaseURL, baseURL)
	}

	allowlist := os.Getenv(EnvE2EAllowedHosts)
	if allowlist == "" {
		return fmt.Errorf("%s not set; example: %s=localhost:5000", EnvE2EAllowedHosts, EnvE2EAllowedHosts)
	}

	for _, h := range strings.Split(allowlist, ",") {
		if strings.TrimSpace(h) == u.Host {
			return nil
		}
	}

	return fmt.Errorf("backend host %q is not in %s=%q", u.Host, EnvE2EAllowedHosts, allowlist)
}

// FindModuleRoot walks up from the current directory to find go.mod.
// Returns the fallback if the root is not found.
func FindModuleRoot(fallback string) string {
	dir, err := os.Getwd()
	if err != nil {
		return fallback
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return fallback
		}

		dir = parent
	}
}

// WriteConfig writes an isolated config file into dir that points at
// baseURL and keeps credentials inside dir. It returns the config path.
func WriteConfig(dir, baseURL string) (string, error) {
	cfgPath := filepath.Join(dir, "config.toml")

	content := fmt.Sprintf(`[api]
base_url = %q

[storage]
backend = "file"
path = %q

[logging]
log_level = "debug"
`, baseURL, filepath.Join(dir, "credentials.json"))

	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing e2e config: %w", err)
	}

	return cfgPath, nil
}
