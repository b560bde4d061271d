package app

import (
	"context"
	"fmt"

	"github.com/vk/graphene"
	"github.com/vk/graphene/internal/config"
	"github.com/vk/graphene/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// apply registers configured aliases and queries and inserts inline graph
// data. Every step name is validated once all aliases are known.
func (a *App) apply(ctx context.Context) error {
	var stepNames []string

	for _, alias := range a.model.Aliases {
		prog, err := a.program(alias.Steps)
		if err != nil {
			return fmt.Errorf("alias %q: %w", alias.Name, err)
		}
		if err := a.db.AddAlias(alias.Name, prog); err != nil {
			return fmt.Errorf("alias %q: %w", alias.Name, err)
		}
		stepNames = append(stepNames, prog.Names()...)
		a.logger.Debug("Alias registered.", "alias", alias.Name, "steps", prog.String())
	}

	for _, alias := range a.model.LegacyAliases {
		defaults, err := a.goValues(alias.Defaults)
		if err != nil {
			return fmt.Errorf("legacy_alias %q: %w", alias.Name, err)
		}
		if err := a.db.AddLegacyAlias(alias.Name, alias.Target, defaults...); err != nil {
			return fmt.Errorf("legacy_alias %q: %w", alias.Name, err)
		}
		stepNames = append(stepNames, alias.Target)
	}

	for _, q := range a.model.Queries {
		prog, err := a.program(q.Steps)
		if err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}
		a.queries[q.Name] = prog
		stepNames = append(stepNames, prog.Names()...)
	}

	if err := a.db.Registry().Validate(ctx, stepNames...); err != nil {
		return fmt.Errorf("configuration references unknown pipe types: %w", err)
	}

	return a.insertInline(ctx)
}

func (a *App) program(steps []*config.Step) (graphene.Program, error) {
	prog := make(graphene.Program, 0, len(steps))
	for i, st := range steps {
		args, err := a.goValues(st.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Name, err)
		}
		prog = append(prog, graphene.S(st.Name, args...))
	}
	return prog, nil
}

func (a *App) goValues(vals []cty.Value) ([]any, error) {
	out := make([]any, len(vals))
	for i, v := range vals {
		goVal, err := a.converter.ToGoValue(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = goVal
	}
	return out, nil
}

func (a *App) goMap(vals map[string]cty.Value) (map[string]any, error) {
	out := make(map[string]any, len(vals))
	for k, v := range vals {
		goVal, err := a.converter.ToGoValue(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = goVal
	}
	return out, nil
}

// insertInline adds vertex and edge blocks. Graph errors are reported by the
// DB and do not stop startup.
func (a *App) insertInline(ctx context.Context) error {
	if len(a.model.Vertices) == 0 && len(a.model.Edges) == 0 {
		return nil
	}
	vertices := make([]graph.VertexSpec, 0, len(a.model.Vertices))
	for _, v := range a.model.Vertices {
		id, err := a.converter.ToGoValue(v.ID)
		if err != nil {
			return fmt.Errorf("vertex id: %w", err)
		}
		props, err := a.goMap(v.Props)
		if err != nil {
			return fmt.Errorf("vertex %v: %w", id, err)
		}
		vertices = append(vertices, graph.VertexSpec{ID: id, Props: props})
	}
	edges := make([]graph.EdgeSpec, 0, len(a.model.Edges))
	for _, e := range a.model.Edges {
		from, err := a.converter.ToGoValue(e.From)
		if err != nil {
			return fmt.Errorf("edge from: %w", err)
		}
		to, err := a.converter.ToGoValue(e.To)
		if err != nil {
			return fmt.Errorf("edge to: %w", err)
		}
		props, err := a.goMap(e.Props)
		if err != nil {
			return fmt.Errorf("edge %v -> %v: %w", from, to, err)
		}
		edges = append(edges, graph.EdgeSpec{Out: from, In: to, Label: e.Label, Props: props})
	}
	if err := a.db.Load(ctx, vertices, edges); err != nil {
		a.logger.Warn("Inline graph data loaded with errors.", "error", err)
	}
	return nil
}
