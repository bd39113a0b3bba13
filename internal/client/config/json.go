package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authflow/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from a zero value, so a file that only sets
// backend_url leaves every other default alone.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	DataDir        *string         `json:"data_dir"`
	LogLevel       *string         `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	MinLoading     *timex.Duration `json:"min_loading"`
	VerifyResetOTP *bool           `json:"verify_reset_otp"`
	PersistSession *bool           `json:"persist_session"`
}

// parseJson overlays cfg with the values present in the JSON file at path.
// An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BackendURL != nil {
		cfg.BackendURL = *jc.BackendURL
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MinLoading != nil {
		cfg.MinLoading = jc.MinLoading.Duration
	}
	if jc.VerifyResetOTP != nil {
		cfg.VerifyResetOTP = *jc.VerifyResetOTP
	}
	if jc.PersistSession != nil {
		cfg.PersistSession = *jc.PersistSession
	}
	return nil
}
