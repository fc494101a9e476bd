package surface

import (
	"fmt"
	"strings"
)

// InternalError reports a disagreement between the planner and the
// surface selector: a symbol became exposable without a backing compiled
// unit. It indicates a feature-graph authoring defect (usually a missing
// implication to the group-owning flag) and is always surfaced, never
// swallowed.
type InternalError struct {
	Details []string
}

// Error implements the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal: planner and surface selector disagree, the feature graph is inconsistent:\n- %s",
		strings.Join(e.Details, "\n- "))
}
