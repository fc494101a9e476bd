// This file contains the logic for translating manifest schema structs
// into the typed graph model of the feature package.

package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/AmityWilder/rlbuild/internal/feature"
)

// translateFeature converts a decoded feature block into a feature.Flag.
func translateFeature(fb *featureBlock) (*feature.Flag, error) {
	defines, err := translateDefines(fb.Defines, fmt.Sprintf("feature '%s'", fb.ID))
	if err != nil {
		return nil, err
	}

	group := fb.Group
	if group == "" {
		if len(fb.Sources) > 0 {
			// A flag with its own sources owns a group named after itself.
			group = fb.ID
		} else {
			group = feature.BaseGroup
		}
	}

	return &feature.Flag{
		ID:          feature.ID(fb.ID),
		Description: fb.Description,
		Implies:     toIDs(fb.Implies),
		Conflicts:   toIDs(fb.Conflicts),
		Artifact: feature.Artifact{
			Group:   group,
			Sources: fb.Sources,
			Defines: defines,
			Needs:   fb.Needs,
			Covers:  fb.Covers,
		},
		Symbols: fb.Symbols,
	}, nil
}

// translateBase converts the decoded base block.
func translateBase(bb *baseBlock) (*feature.Base, error) {
	defines, err := translateDefines(bb.Defines, "base block")
	if err != nil {
		return nil, err
	}
	return &feature.Base{
		Sources: bb.Sources,
		Defines: defines,
		Needs:   bb.Needs,
		Symbols: bb.Symbols,
	}, nil
}

// translateSubstitution converts a decoded substitution block. The
// platforms attribute must be an object of OS name to source path.
func translateSubstitution(sb *substitutionBlock) (*feature.Substitution, error) {
	val, diags := sb.Platforms.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("substitution '%s': invalid platforms attribute: %w", sb.Name, diags)
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("substitution '%s': platforms must be an object of OS to source path", sb.Name)
	}

	perOS := make(map[string]string)
	for os, src := range val.AsValueMap() {
		if src.Type() != cty.String || src.IsNull() {
			return nil, fmt.Errorf("substitution '%s': platform '%s' must map to a source path string", sb.Name, os)
		}
		perOS[os] = src.AsString()
	}
	return &feature.Substitution{Name: sb.Name, PerOS: perOS}, nil
}

// translateDefines evaluates a defines attribute into named cty values.
// Values are restricted to bool, number and string; the planner renders
// them into preprocessor arguments.
func translateDefines(expr hcl.Expression, owner string) (map[string]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: invalid defines attribute: %w", owner, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("%s: defines must be an object of name to value", owner)
	}

	defines := make(map[string]cty.Value)
	for name, v := range val.AsValueMap() {
		switch v.Type() {
		case cty.Bool, cty.Number, cty.String:
			defines[name] = v
		default:
			return nil, fmt.Errorf("%s: define '%s' must be a bool, number or string", owner, name)
		}
	}
	return defines, nil
}

func toIDs(names []string) []feature.ID {
	if len(names) == 0 {
		return nil
	}
	ids := make([]feature.ID, len(names))
	for i, n := range names {
		ids[i] = feature.ID(n)
	}
	return ids
}
