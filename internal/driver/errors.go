package driver

import (
	"fmt"
	"strings"
	"time"
)

// CompileError reports a compilation unit that exited non-zero, with the
// diagnostics captured from the toolchain.
type CompileError struct {
	Unit   string
	Output string
	Err    error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("compile failed for %s: %v", e.Unit, e.Err)
	}
	return fmt.Sprintf("compile failed for %s: %v\n%s", e.Unit, e.Err, out)
}

// Unwrap exposes the underlying exec error.
func (e *CompileError) Unwrap() error { return e.Err }

// TimeoutError reports a compilation unit that exceeded the per-unit
// timeout. Only that unit fails; the rest of the build proceeds.
type TimeoutError struct {
	Unit    string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("compile of %s exceeded timeout of %s", e.Unit, e.Timeout)
}

// BuildError aggregates every unit failure of one build invocation.
type BuildError struct {
	Failures []error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("build failed with %d unit failure(s):\n- %s", len(e.Failures), strings.Join(msgs, "\n- "))
}

// Unwrap exposes the per-unit failures to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error { return e.Failures }
