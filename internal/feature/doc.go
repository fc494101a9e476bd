// Package feature defines the typed feature graph for a native library
// build: flag identifiers, their implication and conflict relations, the
// build artifacts each flag contributes, and the resolved feature set
// produced by the resolver.
//
// A Graph is immutable once constructed and is validated at construction
// time: every cross-reference must name a declared flag or substitution,
// and the implication relation must be acyclic. Callers pass the Graph
// explicitly into the resolver, planner and surface selector; there is no
// ambient global graph.
package feature
