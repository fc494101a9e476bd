package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/driver"
	"github.com/AmityWilder/rlbuild/internal/feature"
	"github.com/AmityWilder/rlbuild/internal/planner"
	"github.com/AmityWilder/rlbuild/internal/platform"
	"github.com/AmityWilder/rlbuild/internal/resolver"
	"github.com/AmityWilder/rlbuild/internal/surface"
)

// Run executes one build invocation: resolve, plan, compile, surface.
// Resolver and planner errors abort before any compiler invocation, so a
// failed run never leaves a partially-built artifact behind.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	plat := platform.Descriptor{
		OS:        a.config.OS,
		Arch:      a.config.Arch,
		Toolchain: platform.Toolchain{CC: a.config.CC, AR: a.config.AR},
	}

	requested := make([]feature.ID, len(a.config.Features))
	for i, name := range a.config.Features {
		requested[i] = feature.ID(name)
	}

	a.setState(Resolving)
	set, err := resolver.Resolve(ctx, a.graph, requested, a.graph.Defaults())
	if err != nil {
		a.setState(Failed)
		return fmt.Errorf("failed to resolve feature set: %w", err)
	}
	a.logger.Info("Feature set resolved.", "flags", set.Len(), "fingerprint", set.Fingerprint())

	a.setState(Planning)
	plan, err := planner.Plan(ctx, a.graph, set, plat)
	if err != nil {
		a.setState(Failed)
		return fmt.Errorf("failed to plan build: %w", err)
	}
	a.logger.Info("Build planned.", "units", len(plan.Units), "platform", plat.String())

	a.setState(Compiling)
	d := driver.New(a.config.SourceDir, a.config.OutDir, a.config.WorkerCount)
	if a.config.UnitTimeout > 0 {
		d.UnitTimeout = a.config.UnitTimeout
	}
	handle, err := d.Build(ctx, plan)
	if err != nil {
		a.setState(Failed)
		return fmt.Errorf("build failed: %w", err)
	}

	// The selector re-reads the feature graph directly rather than the
	// plan's source list, so planner drift cannot hide symbols.
	a.setState(Surfacing)
	surf, err := surface.Select(ctx, a.graph, set, plan)
	if err != nil {
		a.setState(Failed)
		// A surfacing failure is a graph-authoring defect, never a bad
		// request. It must reach the operator undiluted.
		return fmt.Errorf("fatal: %w", err)
	}

	if err := a.writeSurface(surf); err != nil {
		a.setState(Failed)
		return err
	}

	a.setState(Done)
	a.logger.Info("Build finished.", "artifact", handle.Path, "fingerprint", handle.Fingerprint, "symbols", len(surf.Symbols))
	fmt.Fprintln(a.outW, handle.Path)
	return nil
}

// writeSurface emits the symbol list to the configured file, or to the
// app's output writer when no file is configured.
func (a *App) writeSurface(surf *surface.Surface) error {
	if a.config.SurfaceOut == "" {
		_, err := surf.WriteTo(a.outW)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.config.SurfaceOut), 0o755); err != nil {
		return fmt.Errorf("failed to create surface output directory: %w", err)
	}
	f, err := os.Create(a.config.SurfaceOut)
	if err != nil {
		return fmt.Errorf("failed to create surface output file: %w", err)
	}
	defer f.Close()
	if _, err := surf.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write surface output: %w", err)
	}
	return nil
}
