// Package driver executes a build plan against the platform toolchain:
// it compiles every unit across a bounded worker pool, archives the
// objects into a static library and stamps the artifact with the feature
// set fingerprint so unchanged builds are skipped.
//
// Unit failures are aggregated, not fail-fast: one invocation surfaces
// every broken unit. The artifact output directory is a shared resource
// for the duration of one invocation; concurrent builds targeting the
// same directory must be serialized externally (a single build lock),
// which this package does not provide.
package driver
