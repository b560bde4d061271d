package hcl_adapter

import (
	"fmt"

	"github.com/vk/graphene/internal/graph"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToGoValue converts a cty value into plain Go values. Primitives follow
// graph.GoValue; lists, tuples and sets become []any; objects and maps
// become map[string]any.
func (c *Converter) ToGoValue(v cty.Value) (any, error) {
	if v.Type().Equals(cty.NilType) || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value of type %s is not known", v.Type().FriendlyName())
	}

	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		return graph.GoValue(v), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			goElem, err := c.ToGoValue(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, goElem)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for k, elem := range v.AsValueMap() {
			goElem, err := c.ToGoValue(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = goElem
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// ToGoValues converts each value in order.
func (c *Converter) ToGoValues(vs []cty.Value) ([]any, error) {
	out := make([]any, len(vs))
	for i, v := range vs {
		goVal, err := c.ToGoValue(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = goVal
	}
	return out, nil
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	if val, err := graph.ValueOf(v); err == nil {
		return val, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}
