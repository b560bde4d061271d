// Package vertex provides the source pipe type that starts a traversal.
package vertex

import (
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pipe type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("vertex", Vertex)
}

// Vertex resolves its arguments once, caches the matching vertices and then
// emits one fresh token per call, taking candidates from the end of the list.
// The input token's state, if any, is carried forward.
func Vertex(env *pipe.Env, args []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
	if !st.Initialized {
		sel, err := pipe.ParseSelector(args)
		if err != nil {
			env.Report(err)
		}
		st.Vertices = env.Graph.FindVertices(sel)
		st.Initialized = true
	}
	if len(st.Vertices) == 0 {
		return pipe.DoneOutcome
	}

	var state *gremlin.State
	if in != nil {
		state = in.State
	}
	return pipe.Out(gremlin.Make(st.PopVertex(), state))
}

var _ pipe.Func = Vertex
