package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/AmityWilder/rlbuild/internal/app"
	"github.com/AmityWilder/rlbuild/internal/cli"
	"github.com/AmityWilder/rlbuild/internal/manifest"
)

// main is the entrypoint for the rlbuild application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors (a malformed feature
	// graph), so we recover here and return it as a regular error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	// Instantiate the concrete HCL loader to pass to the app.
	loader := manifest.NewLoader()
	buildApp := app.NewApp(outW, appConfig, loader)

	return buildApp.Run(context.Background())
}
