// Package manifest loads feature-graph manifests written in HCL and
// translates them into the typed, validated graph of the feature package.
//
// A manifest consists of `feature` blocks (one per flag), at most one
// `base` block (the unconditional sources), `substitution` blocks
// (platform-specific source selection) and a `defaults` attribute (the
// shipped default flag list). Blocks may be split across any number of
// .hcl files; the loader merges them before validation.
package manifest
