package app

// State tracks one build invocation through its phases. Failed is
// reachable from Resolving, Planning and Compiling; a Surfacing failure
// is an internal error and gets its own reporting path.
type State int

const (
	Idle State = iota
	Resolving
	Planning
	Compiling
	Surfacing
	Done
	Failed
)

// String renders the state for logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case Planning:
		return "planning"
	case Compiling:
		return "compiling"
	case Surfacing:
		return "surfacing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
