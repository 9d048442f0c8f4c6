package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "place-suggest-export/1.0", cfg.UserAgent)
	assert.Equal(t, wd, cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Equal(t, "place_suggest_export", cfg.MetricsJob)
}

func TestLoad_CustomEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUGGEST_BASE_URL", "https://suggest.example.com/api/v2/position/suggest/de/")
	t.Setenv("SUGGEST_TIMEOUT", "15s")
	t.Setenv("SUGGEST_USER_AGENT", "test-agent/2.0")
	t.Setenv("OUTPUT_DIR", dir)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE", filepath.Join(dir, "suggest.log"))
	t.Setenv("METRICS_PUSHGATEWAY_URL", "http://pushgateway:9091")
	t.Setenv("METRICS_JOB", "custom_job")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://suggest.example.com/api/v2/position/suggest/de/", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "test-agent/2.0", cfg.UserAgent)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(dir, "suggest.log"), cfg.LogFile)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
	assert.Equal(t, "custom_job", cfg.MetricsJob)
}

func TestLoad_RelativeOutputDirIsMadeAbsolute(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "exports")

	cfg, err := Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "exports"), cfg.OutputDir)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SUGGEST_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUGGEST_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("SUGGEST_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUGGEST_TIMEOUT")
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"api.goeuro.com/suggest/", "ftp://api.goeuro.com/", "http://"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("SUGGEST_BASE_URL", raw)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SUGGEST_BASE_URL")
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
