package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/AmityWilder/rlbuild/internal/planner"
)

// sourceStamp hashes the content of every planned source file, in plan
// order. A changed source invalidates the artifact even when the feature
// set (and therefore the fingerprint) is unchanged.
func (d *Driver) sourceStamp(plan *planner.BuildPlan) (string, error) {
	digest := xxhash.New()
	for _, unit := range plan.Units {
		path := filepath.Join(d.SourceDir, filepath.FromSlash(unit.Source))
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to read source %s: %w", unit.Source, err)
		}
		_, _ = io.WriteString(digest, unit.Source)
		if _, err := io.Copy(digest, f); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to hash source %s: %w", unit.Source, err)
		}
		f.Close()
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// upToDate reports whether the artifact exists and its stamp matches the
// current source content.
func (d *Driver) upToDate(artifact, srcStamp string) bool {
	if _, err := os.Stat(artifact); err != nil {
		return false
	}
	recorded, err := os.ReadFile(artifact + ".stamp")
	if err != nil {
		return false
	}
	return string(recorded) == srcStamp
}

// writeStamp records the source stamp next to the artifact.
func (d *Driver) writeStamp(artifact, srcStamp string) error {
	return os.WriteFile(artifact+".stamp", []byte(srcStamp), 0o644)
}
