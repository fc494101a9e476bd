package manifest

import "github.com/hashicorp/hcl/v2"

// featureBlock represents a `feature` block from a manifest file.
type featureBlock struct {
	ID          string         `hcl:"id,label"`
	Description string         `hcl:"description,optional"`
	Implies     []string       `hcl:"implies,optional"`
	Conflicts   []string       `hcl:"conflicts,optional"`
	Group       string         `hcl:"group,optional"`
	Sources     []string       `hcl:"sources,optional"`
	Defines     hcl.Expression `hcl:"defines,optional"`
	Needs       []string       `hcl:"needs,optional"`
	Covers      []string       `hcl:"covers,optional"`
	Symbols     []string       `hcl:"symbols,optional"`
}

// baseBlock represents the `base` block: sources compiled into every
// artifact and symbols present on every binding surface.
type baseBlock struct {
	Sources []string       `hcl:"sources"`
	Defines hcl.Expression `hcl:"defines,optional"`
	Needs   []string       `hcl:"needs,optional"`
	Symbols []string       `hcl:"symbols,optional"`
}

// substitutionBlock represents a `substitution` block mapping operating
// system names to source files.
type substitutionBlock struct {
	Name      string         `hcl:"name,label"`
	Platforms hcl.Expression `hcl:"platforms"`
}

// fileRoot is a struct used to decode all supported top-level blocks
// from any manifest file.
type fileRoot struct {
	Features      []*featureBlock      `hcl:"feature,block"`
	Base          *baseBlock           `hcl:"base,block"`
	Substitutions []*substitutionBlock `hcl:"substitution,block"`
	Defaults      []string             `hcl:"defaults,optional"`
	Remain        hcl.Body             `hcl:",remain"`
}
