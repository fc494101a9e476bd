package resolver

import (
	"fmt"
	"strings"

	"github.com/AmityWilder/rlbuild/internal/feature"
)

// ConflictError reports that two mutually exclusive flags both became
// part of the resolution. It names both flags and the implication chain
// that introduced each, so the caller can see which requested flags to
// adjust.
type ConflictError struct {
	A, B   feature.ID
	ChainA []feature.ID
	ChainB []feature.ID
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting flags '%s' and '%s' cannot both be enabled: '%s' %s; '%s' %s",
		e.A, e.B, e.A, renderChain(e.ChainA), e.B, renderChain(e.ChainB))
}

// renderChain describes how a flag entered the resolution.
func renderChain(chain []feature.ID) string {
	if len(chain) <= 1 {
		return "requested directly"
	}
	parts := make([]string, len(chain))
	for i, id := range chain {
		parts[i] = string(id)
	}
	return "implied via " + strings.Join(parts, " -> ")
}
