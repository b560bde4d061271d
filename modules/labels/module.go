// Package labels provides the pipe types that name vertices along a path and
// return to them: as, back, except and merge.
package labels

import (
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pipe types with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("as", As)
	r.MustRegister("back", Back)
	r.MustRegister("except", Except)
	r.MustRegister("merge", Merge)
}

// As records the token's vertex under a label in the shared state.
func As(_ *pipe.Env, args []any, in *gremlin.Gremlin, _ *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	if name, ok := pipe.ParseName(args); ok {
		in.State.Label(name, in.Vertex)
	}
	return pipe.Out(in)
}

// Back moves the token to the vertex recorded under a label. Tokens without
// that label are discarded.
func Back(_ *pipe.Env, args []any, in *gremlin.Gremlin, _ *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	name, _ := pipe.ParseName(args)
	v, ok := in.State.Labeled(name)
	if !ok {
		return pipe.DiscardOutcome
	}
	return pipe.Out(in.GoTo(v))
}

// Except drops tokens positioned on the vertex recorded under a label.
func Except(_ *pipe.Env, args []any, in *gremlin.Gremlin, _ *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	name, _ := pipe.ParseName(args)
	if v, ok := in.State.Labeled(name); ok && v == in.Vertex {
		return pipe.PullOutcome
	}
	return pipe.Out(in)
}

// Merge gathers the vertices recorded under each label argument, in argument
// order, and emits one token per call taken from the end of that list.
// Missing labels are skipped.
func Merge(_ *pipe.Env, args []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
	if len(st.Vertices) == 0 {
		if in == nil {
			return pipe.PullOutcome
		}
		st.Token = in
		for _, name := range pipe.ParseNames(args) {
			if v, ok := in.State.Labeled(name); ok {
				st.Vertices = append(st.Vertices, v)
			}
		}
		if len(st.Vertices) == 0 {
			return pipe.PullOutcome
		}
	}
	return pipe.Out(st.Token.GoTo(st.PopVertex()))
}
