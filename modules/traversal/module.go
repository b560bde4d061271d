// Package traversal provides the out and in pipe types, which walk edges.
package traversal

import (
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pipe types with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("out", Out)
	r.MustRegister("in", In)
}

// Direction selects which adjacency list a traversal follows.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// Out follows outgoing edges to their heads.
var Out = Traverse(Outgoing)

// In follows incoming edges to their tails.
var In = Traverse(Incoming)

// Traverse builds a traversal pipe type for dir. Given a token it collects
// the token vertex's filtered edges, then emits one clone per call positioned
// at the far endpoint of the last pending edge. It pulls when it has neither
// a token nor pending edges.
func Traverse(dir Direction) pipe.Func {
	return func(env *pipe.Env, args []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
		if in == nil && len(st.Edges) == 0 {
			return pipe.PullOutcome
		}

		if len(st.Edges) == 0 {
			filter := edgeFilter(env, args, st)
			var edges []*graph.Edge
			if dir == Outgoing {
				edges = env.Graph.OutEdges(in.Vertex)
			} else {
				edges = env.Graph.InEdges(in.Vertex)
			}
			kept := edges[:0]
			for _, e := range edges {
				if filter.Accept(e) {
					kept = append(kept, e)
				}
			}
			st.Token = in
			st.Edges = kept
		}

		for len(st.Edges) > 0 {
			e := st.PopEdge()
			far := e.In()
			if dir == Incoming {
				far = e.Out()
			}
			if v, ok := env.Graph.Vertex(far); ok {
				return pipe.Out(st.Token.GoTo(v))
			}
		}
		return pipe.PullOutcome
	}
}

func edgeFilter(env *pipe.Env, args []any, st *pipe.State) *pipe.EdgeFilter {
	if st.EdgeFilter == nil {
		f, err := pipe.ParseEdgeFilter(args)
		if err != nil {
			env.Report(err)
		}
		st.EdgeFilter = &f
	}
	return st.EdgeFilter
}
