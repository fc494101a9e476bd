package feature

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ID is the identifier of a single feature flag.
type ID string

// BaseGroup is the artifact group name of the unconditional sources that
// are compiled into every artifact regardless of the requested flags.
const BaseGroup = "base"

// Flag describes one node of the feature graph.
type Flag struct {
	ID          ID
	Description string

	// Implies lists flags that are force-enabled whenever this flag is
	// enabled. Conflicts lists flags that may never be enabled together
	// with this flag.
	Implies   []ID
	Conflicts []ID

	Artifact Artifact

	// Symbols are the foreign symbols this flag makes legally exposable.
	// They are backed by the compilation units of Artifact.Group.
	Symbols []string
}

// Artifact describes the native build contribution of a flag.
type Artifact struct {
	// Group names the artifact group backing this flag's symbols. A flag
	// with its own sources owns a group named after itself; a flag whose
	// code lives inside another group (for example a file-format decoder
	// compiled into its module's translation unit) names that group here.
	Group string

	// Sources are compilation units, relative to the source root.
	Sources []string

	// Defines are preprocessor defines activated by this flag.
	Defines map[string]cty.Value

	// Needs names platform substitutions this flag requires.
	Needs []string

	// Covers names substitutions this flag satisfies with its own
	// sources, serving as the fallback on platforms the substitution
	// does not list.
	Covers []string
}

// Base is the unconditional part of the graph: sources compiled into
// every artifact and symbols exposed on every binding surface.
type Base struct {
	Sources []string
	Defines map[string]cty.Value
	Needs   []string
	Symbols []string
}

// Substitution maps operating system names to the source file that
// implements a platform-specific concern on each of them.
type Substitution struct {
	Name  string
	PerOS map[string]string
}

// Graph is the immutable feature graph for one native library. Construct
// it with NewGraph (typically via the manifest loader) and treat it as
// read-only afterwards.
type Graph struct {
	flags         map[ID]*Flag
	order         []ID
	base          Base
	substitutions map[string]*Substitution
	defaults      []ID
}

// NewGraph builds a Graph from its parts and validates it. It returns a
// *ConfigError when any implies/conflicts/defaults entry references an
// undeclared flag, a needs entry references an undeclared substitution,
// or the implication relation contains a cycle.
func NewGraph(flags []*Flag, base Base, subs []*Substitution, defaults []ID) (*Graph, error) {
	g := &Graph{
		flags:         make(map[ID]*Flag, len(flags)),
		base:          base,
		substitutions: make(map[string]*Substitution, len(subs)),
		defaults:      append([]ID(nil), defaults...),
	}
	for _, f := range flags {
		if _, ok := g.flags[f.ID]; ok {
			return nil, &ConfigError{Kind: ErrDuplicateFlag, Flag: f.ID}
		}
		g.flags[f.ID] = f
		g.order = append(g.order, f.ID)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })

	for _, s := range subs {
		if _, ok := g.substitutions[s.Name]; ok {
			return nil, &ConfigError{Kind: ErrDuplicateFlag, Flag: ID(s.Name), Detail: "substitution declared twice"}
		}
		g.substitutions[s.Name] = s
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Flag returns the declaration of the given flag, or a *ConfigError when
// the flag is unknown.
func (g *Graph) Flag(id ID) (*Flag, error) {
	f, ok := g.flags[id]
	if !ok {
		return nil, &ConfigError{Kind: ErrUnknownFlag, Flag: id}
	}
	return f, nil
}

// Has reports whether the graph declares the given flag.
func (g *Graph) Has(id ID) bool {
	_, ok := g.flags[id]
	return ok
}

// IDs returns all declared flag identifiers in lexicographic order.
func (g *Graph) IDs() []ID {
	return append([]ID(nil), g.order...)
}

// Base returns the unconditional build contribution.
func (g *Graph) Base() Base {
	return g.base
}

// Substitution returns the named platform substitution, or nil when it
// is not declared.
func (g *Graph) Substitution(name string) *Substitution {
	return g.substitutions[name]
}

// Defaults returns the shipped default flag list.
func (g *Graph) Defaults() []ID {
	return append([]ID(nil), g.defaults...)
}
