package planner

import (
	"fmt"

	"github.com/AmityWilder/rlbuild/internal/platform"
)

// UnsupportedPlatformError reports that a required platform substitution
// has no source for the target OS and no flag in the set covers it. It
// is recoverable: the caller can supply a different platform or flag set.
type UnsupportedPlatformError struct {
	Substitution string
	Platform     platform.Descriptor
}

// Error implements the error interface.
func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("substitution '%s' has no source for platform %s and no flag covers it", e.Substitution, e.Platform)
}
