// Package filter provides the pipe types that drop tokens: filter and unique.
package filter

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
	r.MustRegister("filter", Filter)
	r.MustRegister("unique", Unique)
}

// Filter passes tokens whose vertex matches a property map or satisfies a
// predicate. An argument that is neither is reported once and the step lets
// everything through.
func Filter(env *pipe.Env, args []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	if st.VertexFilter == nil {
		f, err := pipe.ParseVertexFilter(args)
		if err != nil {
			env.Report(err)
		}
		st.VertexFilter = &f
	}
	if !st.VertexFilter.Accept(in) {
		return pipe.PullOutcome
	}
	return pipe.Out(in)
}

// Unique passes the first token seen for each vertex id.
func Unique(_ *pipe.Env, _ []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	if st.Seen == nil {
		st.Seen = make(map[graph.ID]struct{})
	}
	id := in.Vertex.ID()
	if _, dup := st.Seen[id]; dup {
		return pipe.PullOutcome
	}
	st.Seen[id] = struct{}{}
	return pipe.Out(in)
}
