package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultBaseURL is the suggest endpoint the search term is appended to.
const DefaultBaseURL = "http://api.goeuro.com/api/v2/position/suggest/en/"

// Config holds all run settings, populated from environment variables.
type Config struct {
	// Suggest API configuration.
	BaseURL   string
	Timeout   time.Duration // 0 disables the timeout
	UserAgent string

	// OutputDir receives JSON.csv. Always absolute after Load.
	OutputDir string

	LogLevel  string
	LogFormat string
	LogFile   string

	// Metrics push configuration. Empty PushgatewayURL disables the push.
	PushgatewayURL string
	MetricsJob     string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SUGGEST_TIMEOUT", "0s"))
	if err != nil || timeout < 0 {
		return nil, errors.New("invalid SUGGEST_TIMEOUT")
	}

	outputDir, err := resolveOutputDir(os.Getenv("OUTPUT_DIR"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:        sharedcfg.EnvOrDefault("SUGGEST_BASE_URL", DefaultBaseURL),
		Timeout:        timeout,
		UserAgent:      sharedcfg.EnvOrDefault("SUGGEST_USER_AGENT", "place-suggest-export/1.0"),
		OutputDir:      outputDir,
		LogLevel:       sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:      sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		LogFile:        os.Getenv("LOG_FILE"),
		PushgatewayURL: os.Getenv("METRICS_PUSHGATEWAY_URL"),
		MetricsJob:     sharedcfg.EnvOrDefault("METRICS_JOB", "place_suggest_export"),
	}

	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	return cfg, nil
}

// validateBaseURL only checks the prefix. The search term is appended raw at
// request time and is not part of this check.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("invalid SUGGEST_BASE_URL")
	}
	return nil
}

func resolveOutputDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid OUTPUT_DIR: %w", err)
	}
	return abs, nil
}
