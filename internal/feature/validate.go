package feature

import "fmt"

// validate checks all cross-references and the acyclicity of the implies
// relation. It runs once, from NewGraph.
func (g *Graph) validate() error {
	for _, id := range g.order {
		f := g.flags[id]
		for _, ref := range f.Implies {
			if !g.Has(ref) {
				return &ConfigError{Kind: ErrUnknownFlag, Flag: ref, Detail: fmt.Sprintf("referenced by implies of '%s'", id)}
			}
		}
		for _, ref := range f.Conflicts {
			if !g.Has(ref) {
				return &ConfigError{Kind: ErrUnknownFlag, Flag: ref, Detail: fmt.Sprintf("referenced by conflicts of '%s'", id)}
			}
		}
		for _, need := range f.Artifact.Needs {
			if g.Substitution(need) == nil {
				return &ConfigError{Kind: ErrUnknownSubstitution, Flag: ID(need), Detail: fmt.Sprintf("needed by '%s'", id)}
			}
		}
		for _, covered := range f.Artifact.Covers {
			if g.Substitution(covered) == nil {
				return &ConfigError{Kind: ErrUnknownSubstitution, Flag: ID(covered), Detail: fmt.Sprintf("covered by '%s'", id)}
			}
		}
	}
	for _, need := range g.base.Needs {
		if g.Substitution(need) == nil {
			return &ConfigError{Kind: ErrUnknownSubstitution, Flag: ID(need), Detail: "needed by base"}
		}
	}
	for _, ref := range g.defaults {
		if !g.Has(ref) {
			return &ConfigError{Kind: ErrUnknownFlag, Flag: ref, Detail: "referenced by defaults"}
		}
	}
	return g.detectCycles()
}

// detectCycles checks the implies relation for cycles. A flag implying
// itself is tolerated as a no-op; any longer cycle is an authoring error.
func (g *Graph) detectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and known not to be part of a cycle.
	// temporary: currently in the recursion stack.
	// unvisited: everything else.
	permanent := make(map[ID]bool)
	temporary := make(map[ID]bool)

	var visit func(id ID) error
	visit = func(id ID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return &ConfigError{Kind: ErrImplicationCycle, Flag: id}
		}

		temporary[id] = true
		for _, implied := range g.flags[id].Implies {
			if implied == id {
				continue // self-implication is a no-op
			}
			if err := visit(implied); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true

		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}
