// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/graphene/internal/config"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

func (l *Loader) translateSteps(ctx context.Context, blocks []*StepBlock) ([]*config.Step, error) {
	steps := make([]*config.Step, 0, len(blocks))
	for i, b := range blocks {
		args, err := evalList(ctx, b.Args, "args")
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, b.Name, err)
		}
		steps = append(steps, &config.Step{Name: b.Name, Args: args})
	}
	return steps, nil
}

func (l *Loader) translateAlias(ctx context.Context, b *AliasBlock) (*config.Alias, error) {
	ctxlog.FromContext(ctx).Debug("Translating alias block.", "alias", b.Name)
	if len(b.Steps) == 0 {
		return nil, fmt.Errorf("alias %q has no steps", b.Name)
	}
	steps, err := l.translateSteps(ctx, b.Steps)
	if err != nil {
		return nil, fmt.Errorf("alias %q: %w", b.Name, err)
	}
	return &config.Alias{Name: b.Name, Description: b.Description, Steps: steps}, nil
}

func (l *Loader) translateLegacyAlias(ctx context.Context, b *LegacyAliasBlock) (*config.LegacyAlias, error) {
	defaults, err := evalList(ctx, b.Defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("legacy_alias %q: %w", b.Name, err)
	}
	return &config.LegacyAlias{Name: b.Name, Target: b.Target, Defaults: defaults}, nil
}

func (l *Loader) translateQuery(ctx context.Context, b *QueryBlock) (*config.Query, error) {
	ctxlog.FromContext(ctx).Debug("Translating query block.", "query", b.Name)
	steps, err := l.translateSteps(ctx, b.Steps)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", b.Name, err)
	}
	return &config.Query{Name: b.Name, Description: b.Description, Steps: steps}, nil
}

func (l *Loader) translateVertex(ctx context.Context, b *VertexBlock) (*config.Vertex, error) {
	id := cty.NullVal(cty.DynamicPseudoType)
	if isExprDefined(ctx, b.ID, "id") {
		v, diags := b.ID.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("vertex id: %w", diags)
		}
		id = v
	}
	props, err := evalMap(ctx, b.Props, "props")
	if err != nil {
		return nil, fmt.Errorf("vertex: %w", err)
	}
	return &config.Vertex{ID: id, Props: props}, nil
}

func (l *Loader) translateEdge(ctx context.Context, b *EdgeBlock) (*config.Edge, error) {
	from, diags := b.From.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("edge from: %w", diags)
	}
	to, diags := b.To.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("edge to: %w", diags)
	}
	props, err := evalMap(ctx, b.Props, "props")
	if err != nil {
		return nil, fmt.Errorf("edge: %w", err)
	}
	return &config.Edge{From: from, To: to, Label: b.Label, Props: props}, nil
}

// evalList evaluates an optional list or tuple attribute into its elements.
func evalList(ctx context.Context, expr hcl.Expression, attrName string) ([]cty.Value, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s: %w", attrName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, fmt.Errorf("%s must be a list, got %s", attrName, ty.FriendlyName())
	}
	out := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v)
	}
	return out, nil
}

// evalMap evaluates an optional object or map attribute.
func evalMap(ctx context.Context, expr hcl.Expression, attrName string) (map[string]cty.Value, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s: %w", attrName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s must be an object, got %s", attrName, ty.FriendlyName())
	}
	return val.AsValueMap(), nil
}
