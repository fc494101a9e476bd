package surface

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/feature"
	"github.com/AmityWilder/rlbuild/internal/planner"
)

// Surface is the list of exposable foreign symbols for one feature set,
// sorted and deduplicated. It is consumed by an external code-generation
// step that turns it into target-language foreign-function declarations.
type Surface struct {
	Symbols []string
}

// Select computes the binding surface for the resolved set. Base symbols
// are always exposable; a flag's symbols are exposable iff the flag is
// in the set. Every exposable symbol's owning artifact group must have
// contributed units to the plan; any miss is an *InternalError.
func Select(ctx context.Context, g *feature.Graph, set *feature.Set, plan *planner.BuildPlan) (*Surface, error) {
	logger := ctxlog.FromContext(ctx)

	symbols := make(map[string]struct{})
	var unbacked []string

	for _, sym := range g.Base().Symbols {
		symbols[sym] = struct{}{}
	}

	for _, id := range set.IDs() {
		f, err := g.Flag(id)
		if err != nil {
			return nil, err
		}
		if len(f.Symbols) == 0 {
			continue
		}
		if !plan.HasGroup(f.Artifact.Group) {
			for _, sym := range f.Symbols {
				unbacked = append(unbacked, fmt.Sprintf("symbol '%s' of flag '%s' has no compiled unit in group '%s'", sym, id, f.Artifact.Group))
			}
			continue
		}
		for _, sym := range f.Symbols {
			symbols[sym] = struct{}{}
		}
	}

	if len(unbacked) > 0 {
		return nil, &InternalError{Details: unbacked}
	}

	out := make([]string, 0, len(symbols))
	for sym := range symbols {
		out = append(out, sym)
	}
	sort.Strings(out)

	logger.Debug("Binding surface selected.", "symbols", len(out))
	return &Surface{Symbols: out}, nil
}

// WriteTo writes the surface as a newline-separated symbol list for the
// downstream code generator.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(s.Symbols, "\n")+"\n")
	return int64(n), err
}
