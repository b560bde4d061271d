package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/graphene/internal/config"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges all blocks into
// one model. Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	seenQueries := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, a := range root.Aliases {
			alias, err := l.translateAlias(ctx, a)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Aliases = append(model.Aliases, alias)
		}
		for _, a := range root.LegacyAliases {
			alias, err := l.translateLegacyAlias(ctx, a)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			model.LegacyAliases = append(model.LegacyAliases, alias)
		}
		for _, q := range root.Queries {
			if prev, dup := seenQueries[q.Name]; dup {
				return nil, nil, fmt.Errorf("%s: query %q already defined in %s", file, q.Name, prev)
			}
			seenQueries[q.Name] = file
			query, err := l.translateQuery(ctx, q)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Queries = append(model.Queries, query)
		}
		for _, v := range root.Vertices {
			vertex, err := l.translateVertex(ctx, v)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Vertices = append(model.Vertices, vertex)
		}
		for _, e := range root.Edges {
			edge, err := l.translateEdge(ctx, e)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Edges = append(model.Edges, edge)
		}
	}

	logger.Debug("HCL loading complete.",
		"aliases", len(model.Aliases),
		"legacy_aliases", len(model.LegacyAliases),
		"queries", len(model.Queries),
		"vertices", len(model.Vertices),
		"edges", len(model.Edges),
	)
	return model, NewConverter(), nil
}
