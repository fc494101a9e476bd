// Package app wires the build pipeline together: it owns configuration,
// the logger and the loaded feature graph, and drives one invocation
// through the resolving, planning, compiling and surfacing phases.
package app
