package driver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/planner"
)

// DefaultUnitTimeout bounds the compile time of a single unit.
const DefaultUnitTimeout = 2 * time.Minute

// ArtifactHandle references a compiled native library and the
// fingerprint of the feature set that produced it.
type ArtifactHandle struct {
	Path        string
	Fingerprint string
}

// Driver compiles build plans. A Driver is stateless between builds and
// safe to reuse.
type Driver struct {
	SourceDir   string
	OutDir      string
	LibName     string // base name of the produced archive, e.g. "raylib"
	Workers     int
	UnitTimeout time.Duration
}

// New returns a Driver with defaults applied.
func New(sourceDir, outDir string, workers int) *Driver {
	if workers < 1 {
		workers = 1
	}
	return &Driver{
		SourceDir:   sourceDir,
		OutDir:      outDir,
		LibName:     "raylib",
		Workers:     workers,
		UnitTimeout: DefaultUnitTimeout,
	}
}

// Build compiles every unit of the plan, archives the objects and
// returns a handle to the artifact. When an artifact with a matching
// fingerprint and unchanged sources already exists, compilation is
// skipped entirely.
//
// Unit failures are collected across all units and returned together as
// a *BuildError; compilation never aborts on the first broken unit.
func (d *Driver) Build(ctx context.Context, plan *planner.BuildPlan) (*ArtifactHandle, error) {
	logger := ctxlog.FromContext(ctx)

	tc := plan.Platform.Toolchain
	if err := checkTools(tc.CC, tc.AR); err != nil {
		return nil, err
	}

	artifact := filepath.Join(d.OutDir, fmt.Sprintf("lib%s_%s.a", d.LibName, plan.Fingerprint))
	handle := &ArtifactHandle{Path: artifact, Fingerprint: plan.Fingerprint}

	srcStamp, err := d.sourceStamp(plan)
	if err != nil {
		return nil, err
	}
	if d.upToDate(artifact, srcStamp) {
		logger.Info("Artifact up to date, skipping compilation.", "artifact", artifact, "fingerprint", plan.Fingerprint)
		return handle, nil
	}

	objDir := filepath.Join(d.OutDir, "obj", plan.Fingerprint)
	if err := os.MkdirAll(objDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}

	logger.Info("Compiling.", "units", len(plan.Units), "workers", d.Workers, "fingerprint", plan.Fingerprint)
	objects, failures := d.compileAll(ctx, plan, objDir)
	if len(failures) > 0 {
		return nil, &BuildError{Failures: failures}
	}

	if err := d.archive(ctx, tc.AR, artifact, objects); err != nil {
		return nil, err
	}
	if err := d.writeStamp(artifact, srcStamp); err != nil {
		return nil, err
	}

	logger.Info("Artifact produced.", "artifact", artifact)
	return handle, nil
}

// archive packs the compiled objects into a static library, in plan order.
func (d *Driver) archive(ctx context.Context, ar, artifact string, objects []string) error {
	if err := os.MkdirAll(filepath.Dir(artifact), 0o755); err != nil {
		return err
	}
	args := append([]string{"rcs", artifact}, objects...)
	cmd := exec.CommandContext(ctx, ar, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w\n%s", artifact, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// checkTools verifies the toolchain binaries exist before any unit is
// attempted, so a missing compiler fails once with a clear message.
func checkTools(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if tool == "" {
			continue
		}
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("required build tools not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
