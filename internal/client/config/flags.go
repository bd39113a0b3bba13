package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds command-line overrides. Register binds them to a flag set,
// Apply copies only the flags the user actually passed onto a Config.
type Flags struct {
	ConfigPath     string
	BackendURL     string
	DataDir        string
	LogLevel       string
	RequestTimeout time.Duration
	MinLoading     time.Duration
	VerifyResetOTP bool
	PersistSession bool
}

// Register declares the client flags on fs.
//
//	-c, --config string            path to a JSON config file
//	-a, --backend string           base URL of the authentication API
//	    --data-dir string          directory for the local session database
//	    --log-level string         debug, info, warn or error
//	    --timeout duration         per-request timeout (0 disables it)
//	    --min-loading duration     minimum loading time of a form submission
//	    --verify-reset-otp         check the reset code with the backend
//	    --persist-session          keep the session cookie between runs
func (f *Flags) Register(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to a JSON config file")
	fs.StringVarP(&f.BackendURL, "backend", "a", d.BackendURL, "base URL of the authentication API")
	fs.StringVar(&f.DataDir, "data-dir", d.DataDir, "directory for the local session database")
	fs.StringVar(&f.LogLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.DurationVar(&f.RequestTimeout, "timeout", d.RequestTimeout, "per-request timeout (0 disables it)")
	fs.DurationVar(&f.MinLoading, "min-loading", d.MinLoading, "minimum loading time of a form submission")
	fs.BoolVar(&f.VerifyResetOTP, "verify-reset-otp", d.VerifyResetOTP, "check the reset code with the backend before asking for a new password")
	fs.BoolVar(&f.PersistSession, "persist-session", d.PersistSession, "keep the session cookie between runs")
}

// Apply overlays cfg with every flag that was set on fs.
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("backend") {
		cfg.BackendURL = f.BackendURL
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = f.DataDir
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if fs.Changed("timeout") {
		cfg.RequestTimeout = f.RequestTimeout
	}
	if fs.Changed("min-loading") {
		cfg.MinLoading = f.MinLoading
	}
	if fs.Changed("verify-reset-otp") {
		cfg.VerifyResetOTP = f.VerifyResetOTP
	}
	if fs.Changed("persist-session") {
		cfg.PersistSession = f.PersistSession
	}
}

// Load is the full chain used by the commands: defaults, JSON, environment,
// then explicit flags, followed by validation.
func (f *Flags) Load(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := LoadConfig(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
