package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/AmityWilder/rlbuild/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rlbuild", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
rlbuild - feature-gated native build orchestrator for raylib bindings.

Resolves a requested feature set against the feature graph, compiles
exactly the native sources that set requires, and emits the list of
foreign symbols the bindings may legally expose.

Usage:
  rlbuild [options] -manifest MANIFEST -src SRC_DIR -out OUT_DIR

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the feature graph manifest file or directory.")
	srcFlag := flagSet.String("src", "", "Path to the native source root.")
	outFlag := flagSet.String("out", "", "Directory the artifact is written to.")
	featuresFlag := flagSet.String("features", "", "Comma-separated requested feature flags. Empty uses the graph defaults.")
	surfaceOutFlag := flagSet.String("surface-out", "", "File the exposable symbol list is written to. Empty writes to stdout.")
	osFlag := flagSet.String("os", runtime.GOOS, "Target operating system.")
	archFlag := flagSet.String("arch", runtime.GOARCH, "Target architecture.")
	ccFlag := flagSet.String("cc", "cc", "C compiler binary.")
	arFlag := flagSet.String("ar", "ar", "Static archiver binary.")
	workersFlag := flagSet.Int("workers", runtime.NumCPU(), "Number of concurrent compile workers.")
	timeoutFlag := flagSet.Duration("unit-timeout", 0, "Per-unit compile timeout. 0 uses the default.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *manifestFlag == "" {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ManifestPath: *manifestFlag,
		SourceDir:    *srcFlag,
		OutDir:       *outFlag,
		SurfaceOut:   *surfaceOutFlag,
		Features:     splitFeatures(*featuresFlag),
		OS:           *osFlag,
		Arch:         *archFlag,
		CC:           *ccFlag,
		AR:           *arFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		WorkerCount:  *workersFlag,
		UnitTimeout:  time.Duration(*timeoutFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

// splitFeatures turns the comma-separated flag value into a clean list.
func splitFeatures(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
