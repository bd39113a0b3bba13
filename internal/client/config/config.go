package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the authflow client.
//
// Fields:
//   - BackendURL: base URL of the authentication API; every call is relative to it.
//   - DataDir: directory holding the local session database.
//   - LogLevel: debug, info, warn or error.
//   - RequestTimeout: client-side limit per HTTP call; 0 disables it.
//   - MinLoading: minimum time a submitting form stays in its loading state; 0 disables it.
//   - VerifyResetOTP: ask the backend to check the reset code before the new-password step.
//   - PersistSession: keep the session cookie in DataDir between runs.
type Config struct {
	BackendURL     string        `env:"BACKEND_URL"`
	DataDir        string        `env:"DATA_DIR"`
	LogLevel       string        `env:"LOG_LEVEL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	MinLoading     time.Duration `env:"MIN_LOADING"`
	VerifyResetOTP bool          `env:"VERIFY_RESET_OTP"`
	PersistSession bool          `env:"PERSIST_SESSION"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8080/api/v1.0"
	c.DataDir = defaultDataDir()
	c.LogLevel = "info"
	c.RequestTimeout = 15 * time.Second
	c.MinLoading = 0
	c.VerifyResetOTP = false
	c.PersistSession = true
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend url %q: scheme must be http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend url %q: missing host", c.BackendURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if c.MinLoading < 0 {
		return fmt.Errorf("min loading must not be negative")
	}
	if c.PersistSession && c.DataDir == "" {
		return fmt.Errorf("data dir is required when the session is persisted")
	}
	return nil
}

// SessionDBPath is the SQLite file that stores the session credential.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.db")
}

// LoadConfig builds a Config from defaults, the JSON file at jsonPath (when
// not empty) and the environment. Flags are applied by the caller through
// Flags.Apply because only it knows which ones were set.
func LoadConfig(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, jsonPath); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".authflow"
	}
	return filepath.Join(dir, "authflow")
}
