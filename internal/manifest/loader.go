package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/AmityWilder/rlbuild/internal/ctxlog"
	"github.com/AmityWilder/rlbuild/internal/feature"
	"github.com/AmityWilder/rlbuild/internal/fsutil"
)

// Loader reads HCL feature-graph manifests from disk.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from the given paths (files or
// directories), merges their blocks and returns the validated feature
// graph. Graph validation errors surface as *feature.ConfigError.
func (l *Loader) Load(ctx context.Context, paths ...string) (*feature.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := l.findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no manifest files found under %v", paths)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()

	var (
		flags    []*feature.Flag
		base     *feature.Base
		subs     []*feature.Substitution
		defaults []feature.ID
	)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, fb := range root.Features {
			f, err := translateFeature(fb)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			flags = append(flags, f)
		}
		if root.Base != nil {
			if base != nil {
				return nil, fmt.Errorf("manifest %s: base block declared more than once", file)
			}
			b, err := translateBase(root.Base)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			base = b
		}
		for _, sb := range root.Substitutions {
			s, err := translateSubstitution(sb)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			subs = append(subs, s)
		}
		for _, d := range root.Defaults {
			defaults = append(defaults, feature.ID(d))
		}
	}

	if base == nil {
		return nil, fmt.Errorf("manifest is missing a base block")
	}

	g, err := feature.NewGraph(flags, *base, subs, defaults)
	if err != nil {
		return nil, err
	}
	logger.Debug("Feature graph loaded and validated.", "flags", len(flags), "substitutions", len(subs), "defaults", len(defaults))
	return g, nil
}

// findManifestFiles expands the given paths into a flat list of .hcl
// files. A path may be a single file or a directory searched recursively.
func (l *Loader) findManifestFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := seen[p]; !ok {
			all = append(all, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing manifest path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return all, nil
}
