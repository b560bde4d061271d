package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/vk/graphene/internal/fault"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Null is the value stored for an explicit null property.
var Null = cty.NullVal(cty.DynamicPseudoType)

// Props is an open property map. Values are primitive cty values or null.
type Props map[string]cty.Value

// ValueOf converts a Go value into a property value. It accepts nil, bool,
// string, every integer and float kind, json.Number and primitive cty values.
// Named types whose underlying kind is one of these are converted through
// gocty. Anything else is rejected with fault.ErrInvalidValue.
func ValueOf(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return Null, nil
	case cty.Value:
		return checkPrimitive(x)
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int32:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case uint:
		return cty.NumberUIntVal(uint64(x)), nil
	case uint64:
		return cty.NumberUIntVal(x), nil
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case json.Number:
		n, err := cty.ParseNumberVal(x.String())
		if err != nil {
			return cty.NilVal, fmt.Errorf("%w: %q is not a number", fault.ErrInvalidValue, x.String())
		}
		return n, nil
	case ID:
		return x.Value(), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil || !ty.IsPrimitiveType() {
		return cty.NilVal, fmt.Errorf("%w: unsupported type %T", fault.ErrInvalidValue, v)
	}
	val, err := gocty.ToCtyValue(v, ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %v", fault.ErrInvalidValue, err)
	}
	return val, nil
}

// MustValue is like ValueOf but panics on error.
func MustValue(v any) cty.Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}

func floatValue(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.NilVal, fmt.Errorf("%w: NaN", fault.ErrInvalidValue)
	}
	return cty.NumberFloatVal(f), nil
}

func checkPrimitive(v cty.Value) (cty.Value, error) {
	if v.Type().Equals(cty.NilType) || v.IsNull() {
		return Null, nil
	}
	if !v.IsKnown() || !v.Type().IsPrimitiveType() {
		return cty.NilVal, fmt.Errorf("%w: %s value", fault.ErrInvalidValue, v.Type().FriendlyName())
	}
	return v, nil
}

// GoValue converts a property value back to a plain Go value: nil, bool,
// string, int64 (for integral numbers that fit) or float64.
func GoValue(v cty.Value) any {
	if v.Type().Equals(cty.NilType) || v.IsNull() || !v.IsKnown() {
		return nil
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Bool):
		return v.True()
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if n, acc := bf.Int64(); acc == big.Exact {
				return n
			}
		}
		f, _ := bf.Float64()
		return f
	default:
		return nil
	}
}

// ValuesEqual reports whether two property values are equal. Nulls are equal
// to each other regardless of their type; numbers compare by value.
func ValuesEqual(a, b cty.Value) bool {
	aNull := a.Type().Equals(cty.NilType) || a.IsNull()
	bNull := b.Type().Equals(cty.NilType) || b.IsNull()
	if aNull || bNull {
		return aNull && bNull
	}
	return a.RawEquals(b)
}

// IsNull reports whether v is a null or missing value.
func IsNull(v cty.Value) bool {
	return v.Type().Equals(cty.NilType) || v.IsNull()
}

// PropsOf converts a map of Go values into Props.
func PropsOf(m map[string]any) (Props, error) {
	if len(m) == 0 {
		return Props{}, nil
	}
	out := make(Props, len(m))
	for k, raw := range m {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// MustProps is like PropsOf but panics on error.
func MustProps(m map[string]any) Props {
	p, err := PropsOf(m)
	if err != nil {
		panic(err)
	}
	return p
}

// Keys returns the property names in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy. cty values are immutable, so this is a full copy.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ToGo converts the map into plain Go values.
func (p Props) ToGo() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = GoValue(v)
	}
	return out
}

// matches reports whether every selector entry is present via get and equal.
func matches(get func(string) (cty.Value, bool), sel Props) bool {
	for k, want := range sel {
		got, ok := get(k)
		if !ok || !ValuesEqual(got, want) {
			return false
		}
	}
	return true
}
