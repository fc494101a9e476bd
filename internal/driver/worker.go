package driver

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/planner"
)

// unitResult carries the outcome of one compilation unit.
type unitResult struct {
	index  int
	object string
	err    error
}

// compileAll fans the plan's units out to a bounded worker pool and
// joins every result before returning. Units have no ordering
// dependency, so workers pull from a single channel; the object list is
// reassembled in plan order afterwards.
func (d *Driver) compileAll(ctx context.Context, plan *planner.BuildPlan, objDir string) ([]string, []error) {
	type job struct {
		index int
		unit  planner.Unit
	}

	jobs := make(chan job)
	results := make(chan unitResult)

	var wg sync.WaitGroup
	for workerID := 0; workerID < d.Workers; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			logger := ctxlog.FromContext(ctx).With("workerID", workerID)
			for j := range jobs {
				logger.Debug("Worker picked up unit.", "source", j.unit.Source)
				object, err := d.compileUnit(ctx, plan, j.unit, objDir)
				if err != nil {
					logger.Debug("Unit failed.", "source", j.unit.Source, "error", err)
				}
				results <- unitResult{index: j.index, object: object, err: err}
			}
		}(workerID)
	}

	go func() {
		for i, unit := range plan.Units {
			jobs <- job{index: i, unit: unit}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	objects := make([]string, len(plan.Units))
	var failures []error
	failedIdx := make([]int, 0)
	byIdx := make(map[int]error)
	for res := range results {
		if res.err != nil {
			failedIdx = append(failedIdx, res.index)
			byIdx[res.index] = res.err
			continue
		}
		objects[res.index] = res.object
	}

	// Report failures in plan order regardless of completion order.
	sort.Ints(failedIdx)
	for _, i := range failedIdx {
		failures = append(failures, byIdx[i])
	}
	return objects, failures
}

// compileUnit invokes the compiler for a single source file, bounded by
// the per-unit timeout. A timeout fails only this unit.
func (d *Driver) compileUnit(ctx context.Context, plan *planner.BuildPlan, unit planner.Unit, objDir string) (string, error) {
	unitCtx := ctx
	if d.UnitTimeout > 0 {
		var cancel context.CancelFunc
		unitCtx, cancel = context.WithTimeout(ctx, d.UnitTimeout)
		defer cancel()
	}

	source := filepath.Join(d.SourceDir, filepath.FromSlash(unit.Source))
	object := filepath.Join(objDir, objectName(unit.Source))

	args := []string{"-c", source, "-o", object}
	args = append(args, plan.Defines...)
	args = append(args, unit.Defines...)

	cmd := exec.CommandContext(unitCtx, plan.Platform.Toolchain.CC, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(unitCtx.Err(), context.DeadlineExceeded) {
			return "", &TimeoutError{Unit: unit.Source, Timeout: d.UnitTimeout}
		}
		return "", &CompileError{Unit: unit.Source, Output: string(output), Err: err}
	}
	return object, nil
}

// objectName flattens a source path into a unique object file name.
func objectName(source string) string {
	name := strings.ReplaceAll(source, "/", "_")
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".o"
}
