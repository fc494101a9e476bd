// Package surface derives the set of foreign symbols that may legally be
// exposed for a resolved feature set, and cross-checks every symbol
// against the build plan so nothing is exposed without a backing
// compiled unit.
//
// The selector reads the same feature graph the planner read, never an
// independently maintained symbol list, which eliminates drift between
// what is compiled and what is exposed. A disagreement between the two
// is an authoring defect in the graph and surfaces as *InternalError.
package surface
