// Package config loads runtime configuration for the authflow client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config / -c.
//  3. Environment variables prefixed with AUTHFLOW_ (see parseEnv).
//  4. Command-line flags that were set explicitly (see Flags.Apply).
//
// Later sources override earlier ones.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "backend_url": "http://localhost:8080/api/v1.0",
//	  "data_dir": "/home/me/.config/authflow",
//	  "log_level": "info",
//	  "request_timeout": "15s",
//	  "min_loading": "0s",
//	  "verify_reset_otp": false,
//	  "persist_session": true
//	}
//
// # Environment
//
//	AUTHFLOW_BACKEND_URL, AUTHFLOW_DATA_DIR, AUTHFLOW_LOG_LEVEL,
//	AUTHFLOW_REQUEST_TIMEOUT, AUTHFLOW_MIN_LOADING,
//	AUTHFLOW_VERIFY_RESET_OTP, AUTHFLOW_PERSIST_SESSION
package config
