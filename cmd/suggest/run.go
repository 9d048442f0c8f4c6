package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/couchcryptid/place-suggest-export/internal/adapter/csvfile"
	"github.com/couchcryptid/place-suggest-export/internal/adapter/suggest"
	"github.com/couchcryptid/place-suggest-export/internal/config"
	"github.com/couchcryptid/place-suggest-export/internal/export"
	"github.com/couchcryptid/place-suggest-export/internal/observability"
)

const exitUsage = 1

const pushTimeout = 5 * time.Second

var errUsage = errors.New("expected exactly one argument")

// run is main without the process: it takes the argument vector (program name
// first) and output streams, and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	prog := "suggest"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	term, err := validateArgs(args)
	if err != nil {
		printUsage(stdout, prog)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return exitUsage
	}

	logger, closeLog := observability.NewLogger(cfg, stderr)
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(stderr, "error: close log file: %s\n", err)
		}
	}()

	metrics := observability.NewMetrics()
	client := suggest.NewClient(cfg.BaseURL, cfg.UserAgent, cfg.Timeout, metrics, logger)
	writer := csvfile.NewWriter(cfg.OutputDir, metrics, logger)

	logger.Debug("configuration loaded",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"output_dir", cfg.OutputDir,
		"pushgateway", cfg.PushgatewayURL != "")

	outcome := export.New(client, writer, stdout, logger, metrics).Run(ctx, term)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		defer cancel()
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, cfg.MetricsJob); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	return outcome.ExitCode()
}

// validateArgs returns the single search term unchanged.
func validateArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w, got %d", errUsage, len(args))
	}
	return args[0], nil
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintln(w, "Incorrect argument format. Requires 1 argument")
	fmt.Fprintf(w, "Command line format: %s \"CITY_NAME\"\n", prog)
}
