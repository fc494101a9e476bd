package planner

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/feature"
	"github.com/AmityWilder/rlbuild/internal/platform"
)

// Unit is one compilation unit of a plan: a source path relative to the
// source root plus the defines contributed by the group that owns it.
type Unit struct {
	Source  string
	Defines []string
}

// BuildPlan is the concrete compilation recipe for one feature set on
// one platform. It is consumed by the compiler driver and discarded once
// the artifact exists.
type BuildPlan struct {
	Units    []Unit
	Defines  []string // global define set, sorted
	Platform platform.Descriptor

	// Groups records which artifact groups contributed units. The
	// surface selector cross-checks symbol availability against it.
	Groups map[string]struct{}

	// Fingerprint carries the content hash of the feature set the plan
	// was derived from; the produced artifact is keyed by it.
	Fingerprint string
}

// HasGroup reports whether the named artifact group contributed
// compilation units to the plan.
func (p *BuildPlan) HasGroup(group string) bool {
	_, ok := p.Groups[group]
	return ok
}

// Plan derives a BuildPlan from the resolved set. The base group is
// always included; flag groups follow in lexicographic flag order.
// Sources are deduplicated by canonical path. A substitution with no
// entry for the target OS fails with *UnsupportedPlatformError unless a
// flag in the set covers that OS with its own sources for the same
// substitution name.
func Plan(ctx context.Context, g *feature.Graph, set *feature.Set, plat platform.Descriptor) (*BuildPlan, error) {
	logger := ctxlog.FromContext(ctx)

	plan := &BuildPlan{
		Platform:    plat,
		Groups:      map[string]struct{}{feature.BaseGroup: {}},
		Fingerprint: set.Fingerprint(),
	}

	seen := make(map[string]struct{})
	globalDefines := make(map[string]cty.Value)

	// Substitutions satisfied by a flag's own sources are not looked up
	// for the target OS at all.
	covered := make(map[string]struct{})
	for _, id := range set.IDs() {
		f, err := g.Flag(id)
		if err != nil {
			return nil, err
		}
		for _, c := range f.Artifact.Covers {
			covered[c] = struct{}{}
		}
	}

	addUnit := func(source string, defines []string) {
		canonical := filepath.Clean(filepath.ToSlash(source))
		if _, ok := seen[canonical]; ok {
			return
		}
		seen[canonical] = struct{}{}
		plan.Units = append(plan.Units, Unit{Source: canonical, Defines: defines})
	}

	addGroup := func(group string, sources []string, defines map[string]cty.Value, needs []string) error {
		rendered := renderDefines(defines)
		for _, src := range sources {
			addUnit(src, rendered)
		}
		for _, need := range needs {
			if _, ok := covered[need]; ok {
				continue
			}
			sub := g.Substitution(need)
			src, ok := sub.PerOS[plat.OS]
			if !ok {
				return &UnsupportedPlatformError{Substitution: need, Platform: plat}
			}
			addUnit(src, rendered)
		}
		for name, val := range defines {
			globalDefines[name] = val
		}
		if len(sources) > 0 || len(needs) > 0 {
			plan.Groups[group] = struct{}{}
		}
		return nil
	}

	base := g.Base()
	if err := addGroup(feature.BaseGroup, base.Sources, base.Defines, base.Needs); err != nil {
		return nil, err
	}

	for _, id := range set.IDs() {
		f, err := g.Flag(id)
		if err != nil {
			return nil, err
		}
		a := f.Artifact
		if err := addGroup(a.Group, a.Sources, a.Defines, a.Needs); err != nil {
			return nil, err
		}
	}

	plan.Defines = renderDefines(globalDefines)
	logger.Debug("Build plan materialized.", "units", len(plan.Units), "defines", len(plan.Defines), "platform", plat.String())
	return plan, nil
}

// renderDefines turns named cty values into sorted -D compiler
// arguments. Booleans become bare defines when true and are omitted when
// false; numbers and strings become NAME=value.
func renderDefines(defines map[string]cty.Value) []string {
	if len(defines) == 0 {
		return nil
	}
	rendered := make([]string, 0, len(defines))
	for name, val := range defines {
		switch val.Type() {
		case cty.Bool:
			if val.True() {
				rendered = append(rendered, "-D"+name)
			}
		case cty.Number:
			bf := val.AsBigFloat()
			if i, acc := bf.Int64(); acc == big.Exact {
				rendered = append(rendered, fmt.Sprintf("-D%s=%d", name, i))
			} else {
				rendered = append(rendered, fmt.Sprintf("-D%s=%s", name, bf.Text('g', -1)))
			}
		case cty.String:
			rendered = append(rendered, fmt.Sprintf("-D%s=\"%s\"", name, val.AsString()))
		}
	}
	sort.Strings(rendered)
	return rendered
}
