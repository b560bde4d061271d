package pipe

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/zclconf/go-cty/cty"
)

// EdgeFilterKind tags the variant held by an EdgeFilter.
type EdgeFilterKind int

const (
	EdgeAll EdgeFilterKind = iota
	EdgeLabelEquals
	EdgeLabelIn
	EdgePropertyMatch
)

// EdgeFilter restricts which edges an out/in step follows.
type EdgeFilter struct {
	Kind   EdgeFilterKind
	Label  string
	Labels map[string]struct{}
	Match  graph.Props
}

// Accept reports whether e passes the filter.
func (f *EdgeFilter) Accept(e *graph.Edge) bool {
	switch f.Kind {
	case EdgeLabelEquals:
		return e.Label() == f.Label
	case EdgeLabelIn:
		_, ok := f.Labels[e.Label()]
		return ok
	case EdgePropertyMatch:
		return e.Matches(f.Match)
	default:
		return true
	}
}

// ParseEdgeFilter resolves the first step argument: none for all edges, a
// string for an exact label, a list of strings for label membership, or a
// property map matched against edge properties ("_label" addresses the
// label).
func ParseEdgeFilter(args []any) (EdgeFilter, error) {
	if len(args) == 0 || args[0] == nil {
		return EdgeFilter{Kind: EdgeAll}, nil
	}
	arg := args[0]
	if s, ok := asString(arg); ok {
		return EdgeFilter{Kind: EdgeLabelEquals, Label: s}, nil
	}
	if labels, ok := asStrings(arg); ok {
		set := make(map[string]struct{}, len(labels))
		for _, l := range labels {
			set[l] = struct{}{}
		}
		return EdgeFilter{Kind: EdgeLabelIn, Labels: set}, nil
	}
	props, ok, err := asProps(arg)
	if err != nil {
		return EdgeFilter{Kind: EdgeAll}, err
	}
	if ok {
		return EdgeFilter{Kind: EdgePropertyMatch, Match: props}, nil
	}
	return EdgeFilter{Kind: EdgeAll}, &fault.InvalidFilterError{Arg: arg}
}

// Predicate decides whether a token passes a filter step.
type Predicate func(v *graph.Vertex, g *gremlin.Gremlin) bool

// VertexFilterKind tags the variant held by a VertexFilter.
type VertexFilterKind int

const (
	// VertexPassThrough accepts everything. It is what an invalid argument
	// resolves to.
	VertexPassThrough VertexFilterKind = iota
	VertexPropertyMatch
	VertexPredicate
)

// VertexFilter is the resolved argument of a filter step.
type VertexFilter struct {
	Kind  VertexFilterKind
	Match graph.Props
	Pred  Predicate
}

// Accept reports whether the token passes.
func (f *VertexFilter) Accept(g *gremlin.Gremlin) bool {
	switch f.Kind {
	case VertexPropertyMatch:
		return g.Vertex.Matches(f.Match)
	case VertexPredicate:
		return f.Pred(g.Vertex, g)
	default:
		return true
	}
}

// ParseVertexFilter resolves a filter argument: a property map or a
// predicate. An explicit nil is an empty property map and passes everything.
// Anything else, including a missing argument, yields a pass-through filter
// and an InvalidFilterError.
func ParseVertexFilter(args []any) (VertexFilter, error) {
	var arg any
	if len(args) > 0 {
		if args[0] == nil {
			return VertexFilter{Kind: VertexPassThrough}, nil
		}
		arg = args[0]
	}
	switch fn := arg.(type) {
	case Predicate:
		if fn != nil {
			return VertexFilter{Kind: VertexPredicate, Pred: fn}, nil
		}
	case func(*graph.Vertex, *gremlin.Gremlin) bool:
		if fn != nil {
			return VertexFilter{Kind: VertexPredicate, Pred: fn}, nil
		}
	case func(*graph.Vertex) bool:
		if fn != nil {
			return VertexFilter{Kind: VertexPredicate, Pred: func(v *graph.Vertex, _ *gremlin.Gremlin) bool { return fn(v) }}, nil
		}
	}
	props, ok, err := asProps(arg)
	if err != nil {
		return VertexFilter{Kind: VertexPassThrough}, err
	}
	if ok {
		return VertexFilter{Kind: VertexPropertyMatch, Match: props}, nil
	}
	return VertexFilter{Kind: VertexPassThrough}, &fault.InvalidFilterError{Arg: arg}
}

// ParseSelector resolves vertex step arguments: no arguments selects every
// vertex, a single property map selects by match, and anything else is a
// list of ids. A single list argument is expanded into ids.
func ParseSelector(args []any) (graph.Selector, error) {
	if len(args) == 0 {
		return graph.All(), nil
	}
	if len(args) == 1 {
		props, ok, err := asProps(args[0])
		if err != nil {
			return graph.ByIDs(), err
		}
		if ok {
			return graph.Matching(props), nil
		}
		if list, ok := asList(args[0]); ok {
			args = list
		}
	}
	ids := make([]graph.ID, 0, len(args))
	for _, raw := range args {
		id, err := graph.ParseID(raw)
		if err != nil {
			return graph.ByIDs(ids...), err
		}
		ids = append(ids, id)
	}
	return graph.ByIDs(ids...), nil
}

// ParseCount resolves a non-negative integer argument.
func ParseCount(args []any) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing count", fault.ErrInvalidValue)
	}
	v, err := graph.ValueOf(args[0])
	if err != nil || graph.IsNull(v) || !v.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("%w: count %v is not a number", fault.ErrInvalidValue, args[0])
	}
	f, _ := v.AsBigFloat().Float64()
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: count %v is not a non-negative integer", fault.ErrInvalidValue, args[0])
	}
	return int(f), nil
}

// ParseName resolves a string argument such as a label name.
func ParseName(args []any) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	return asString(args[0])
}

// ParseNames resolves every argument as a string, skipping the others.
func ParseNames(args []any) []string {
	if len(args) == 1 {
		if list, ok := asStrings(args[0]); ok {
			return list
		}
	}
	var out []string
	for _, a := range args {
		if s, ok := asString(a); ok {
			out = append(out, s)
		}
	}
	return out
}

func asString(arg any) (string, bool) {
	switch v := arg.(type) {
	case string:
		return v, true
	case cty.Value:
		if v.IsKnown() && !graph.IsNull(v) && v.Type().Equals(cty.String) {
			return v.AsString(), true
		}
	}
	return "", false
}

func asList(arg any) ([]any, bool) {
	switch v := arg.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []graph.ID:
		out := make([]any, len(v))
		for i, id := range v {
			out[i] = id
		}
		return out, true
	case cty.Value:
		if !v.IsKnown() || graph.IsNull(v) {
			return nil, false
		}
		ty := v.Type()
		if !(ty.IsTupleType() || ty.IsListType() || ty.IsSetType()) {
			return nil, false
		}
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ev)
		}
		return out, true
	}
	return nil, false
}

func asStrings(arg any) ([]string, bool) {
	if ss, ok := arg.([]string); ok {
		return ss, true
	}
	list, ok := asList(arg)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := asString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// asProps interprets arg as a property map. ok is false when arg is not
// map-shaped at all; err is set when it is map-shaped but holds values that
// are not valid properties.
func asProps(arg any) (graph.Props, bool, error) {
	switch v := arg.(type) {
	case graph.Props:
		return v, true, nil
	case map[string]cty.Value:
		p, err := propsFrom(v)
		return p, true, err
	case map[string]any:
		p, err := graph.PropsOf(v)
		return p, true, err
	case map[string]string:
		p := make(graph.Props, len(v))
		for k, s := range v {
			p[k] = cty.StringVal(s)
		}
		return p, true, nil
	case json.RawMessage:
		var m map[string]any
		if err := json.Unmarshal(v, &m); err != nil {
			return nil, false, nil
		}
		p, err := graph.PropsOf(m)
		return p, true, err
	case cty.Value:
		if !v.IsKnown() || graph.IsNull(v) {
			return nil, false, nil
		}
		ty := v.Type()
		if !(ty.IsObjectType() || ty.IsMapType()) {
			return nil, false, nil
		}
		p, err := propsFrom(v.AsValueMap())
		return p, true, err
	}
	return nil, false, nil
}

func propsFrom(m map[string]cty.Value) (graph.Props, error) {
	p := make(graph.Props, len(m))
	for k, raw := range m {
		val, err := graph.ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", k, err)
		}
		p[k] = val
	}
	return p, nil
}
