package feature

import "fmt"

// ErrKind classifies the ways a feature graph can be malformed.
type ErrKind int

const (
	// ErrUnknownFlag means a reference names a flag that is not declared.
	ErrUnknownFlag ErrKind = iota
	// ErrImplicationCycle means the implies relation is cyclic.
	ErrImplicationCycle
	// ErrUnknownSubstitution means a needs entry names an undeclared substitution.
	ErrUnknownSubstitution
	// ErrDuplicateFlag means the same identifier is declared twice.
	ErrDuplicateFlag
)

// ConfigError reports a malformed feature graph. It is detected once at
// graph load and is fatal: no build is attempted against a graph that
// failed validation.
type ConfigError struct {
	Kind   ErrKind
	Flag   ID
	Detail string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var what string
	switch e.Kind {
	case ErrUnknownFlag:
		what = "unknown flag"
	case ErrImplicationCycle:
		what = "implication cycle"
	case ErrUnknownSubstitution:
		what = "unknown substitution"
	case ErrDuplicateFlag:
		what = "duplicate declaration"
	default:
		what = "invalid graph"
	}
	if e.Detail != "" {
		return fmt.Sprintf("feature graph: %s '%s': %s", what, e.Flag, e.Detail)
	}
	return fmt.Sprintf("feature graph: %s '%s'", what, e.Flag)
}
