// Command suggest queries the position-suggest API for a place name and
// exports the matches to JSON.csv.
//
// Usage:
//
//	suggest "Berlin"
//
// Exit status is 0 when the run completes (including an empty result or a
// failed file write), 1 on a usage or configuration error and 2 when the API
// could not be queried.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %s\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
