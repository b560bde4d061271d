package query

import (
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/zclconf/go-cty/cty"
)

// Result is one item produced by a run: either a projected value (from a
// property step) or the vertex the token ended on.
type Result struct {
	Vertex    *graph.Vertex
	Value     cty.Value
	Projected bool
}

func resultOf(tok *gremlin.Gremlin) Result {
	if v, ok := tok.Result(); ok && !graph.IsNull(v) {
		return Result{Vertex: tok.Vertex, Value: v, Projected: true}
	}
	return Result{Vertex: tok.Vertex}
}

// GoValue returns the projected value as a plain Go value, or the vertex as
// a property map including "_id".
func (r Result) GoValue() any {
	if r.Projected {
		return graph.GoValue(r.Value)
	}
	if r.Vertex == nil {
		return nil
	}
	m := r.Vertex.Props().ToGo()
	m["_id"] = r.Vertex.ID().GoValue()
	return m
}

// Results is the output of a run.
type Results []Result

// IDs returns the id of each result's vertex.
func (rs Results) IDs() []graph.ID {
	out := make([]graph.ID, 0, len(rs))
	for _, r := range rs {
		if r.Vertex != nil {
			out = append(out, r.Vertex.ID())
		}
	}
	return out
}

// Vertices returns each result's vertex.
func (rs Results) Vertices() []*graph.Vertex {
	out := make([]*graph.Vertex, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Vertex)
	}
	return out
}

// Values returns GoValue for each result.
func (rs Results) Values() []any {
	out := make([]any, len(rs))
	for i, r := range rs {
		out[i] = r.GoValue()
	}
	return out
}
