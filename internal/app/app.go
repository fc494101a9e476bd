package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/feature"
)

// GraphLoader loads a feature graph from manifest paths. The HCL loader
// in the manifest package is the production implementation; tests may
// substitute their own.
type GraphLoader interface {
	Load(ctx context.Context, paths ...string) (*feature.Graph, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	graph  *feature.Graph
	state  State
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded,
// validated feature graph.
func NewApp(outW io.Writer, cfg *Config, loader GraphLoader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	graph, err := loader.Load(ctx, cfg.ManifestPath)
	if err != nil {
		// A malformed graph is a fatal startup error: nothing may be
		// built against it.
		panic(fmt.Errorf("failed to load feature graph: %w", err))
	}
	logger.Debug("Feature graph loaded.", "flags", len(graph.IDs()))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		graph:  graph,
		state:  Idle,
	}
}

// Graph returns the loaded feature graph. This is primarily for testing.
func (a *App) Graph() *feature.Graph {
	return a.graph
}

// State returns the state the last invocation ended in. This is
// primarily for testing.
func (a *App) State() State {
	return a.state
}

// setState records and logs a phase transition.
func (a *App) setState(s State) {
	a.logger.Debug("State transition.", "from", a.state.String(), "to", s.String())
	a.state = s
}
