// Package resolver expands a requested flag set into a closed,
// conflict-free feature set by computing the transitive closure of the
// graph's implication edges.
//
// Resolution is a pure, reentrant computation over the immutable graph.
// Flags are processed in lexicographic order, so identical inputs always
// produce an identical set and an identical fingerprint.
package resolver
