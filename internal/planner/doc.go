// Package planner turns a resolved feature set and a platform descriptor
// into a concrete build plan: deduplicated compilation units, rendered
// preprocessor defines and platform-substituted sources.
//
// Planning is pure and reentrant; it never touches the filesystem or the
// process environment. A plan that fails to materialize (for example a
// required platform substitution with no entry for the target OS) aborts
// the pipeline before any compiler invocation.
package planner
