package resolver

import (
	"context"
	"sort"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/feature"
)

// Resolve expands the requested flags into a closed, conflict-free
// feature set. When requested is empty, the defaults seed the resolution
// instead (default-substitution policy).
//
// Unknown requested flags surface as *feature.ConfigError; a pair of
// mutually exclusive flags both becoming reachable surfaces as
// *ConflictError naming both flags and the implication chain that
// introduced each.
func Resolve(ctx context.Context, g *feature.Graph, requested, defaults []feature.ID) (*feature.Set, error) {
	logger := ctxlog.FromContext(ctx)

	seed := requested
	if len(seed) == 0 {
		logger.Debug("Empty request, substituting defaults.", "default_count", len(defaults))
		seed = defaults
	}

	members := make(map[feature.ID]struct{})
	chains := make(map[feature.ID][]feature.ID)
	var pending []feature.ID

	add := func(id feature.ID, chain []feature.ID) error {
		if _, ok := members[id]; ok {
			return nil // requesting a flag twice is idempotent
		}
		f, err := g.Flag(id)
		if err != nil {
			return err
		}
		for other := range members {
			if conflicts(f, g, other) {
				a, b := other, id
				return &ConflictError{A: a, B: b, ChainA: chains[a], ChainB: chain}
			}
		}
		members[id] = struct{}{}
		chains[id] = chain
		pending = append(pending, id)
		return nil
	}

	for _, id := range sortedUnique(seed) {
		if err := add(id, []feature.ID{id}); err != nil {
			return nil, err
		}
	}

	// Worklist to fixpoint. The pending list is re-sorted before every
	// pop so flags are always processed in lexicographic order,
	// independent of seed order.
	for len(pending) > 0 {
		sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })
		id := pending[0]
		pending = pending[1:]

		f, err := g.Flag(id)
		if err != nil {
			return nil, err
		}
		for _, implied := range sortedUnique(f.Implies) {
			if implied == id {
				continue // self-implication is a no-op
			}
			chain := append(append([]feature.ID(nil), chains[id]...), implied)
			if err := add(implied, chain); err != nil {
				return nil, err
			}
		}
	}

	ids := make([]feature.ID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	set := feature.NewSet(ids...)
	logger.Debug("Feature set resolved.", "requested", len(requested), "resolved", set.Len(), "fingerprint", set.Fingerprint())
	return set, nil
}

// conflicts reports whether flag f and the already-resolved flag other
// exclude each other in either direction.
func conflicts(f *feature.Flag, g *feature.Graph, other feature.ID) bool {
	for _, c := range f.Conflicts {
		if c == other {
			return true
		}
	}
	otherFlag, err := g.Flag(other)
	if err != nil {
		return false // other was validated when it was added
	}
	for _, c := range otherFlag.Conflicts {
		if c == f.ID {
			return true
		}
	}
	return false
}

func sortedUnique(ids []feature.ID) []feature.ID {
	out := append([]feature.ID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, id := range out {
		if i > 0 && id == out[i-1] {
			continue
		}
		out[n] = id
		n++
	}
	return out[:n]
}
