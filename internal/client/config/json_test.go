package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"backend_url":      "https://auth.example.com/api",
			"request_timeout":  "3s",
			"verify_reset_otp": true,
		})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "https://auth.example.com/api", cfg.BackendURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.True(t, cfg.VerifyResetOTP)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.True(t, cfg.PersistSession)
	})

	t.Run("explicit false overrides default true", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"persist_session": false, "min_loading": "2s"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))

		assert.False(t, cfg.PersistSession)
		assert.Equal(t, 2*time.Second, cfg.MinLoading)
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := &Config{BackendURL: "http://defaults:1234"}
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, "http://defaults:1234", cfg.BackendURL)
	})

	t.Run("missing file → error", func(t *testing.T) {
		err := parseJson(&Config{}, filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJson(&Config{}, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}
