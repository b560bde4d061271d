// Package property provides the pipe type that projects a vertex field into
// the token's result slot.
package property

import (
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pipe type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("property", Property)
}

// Property copies the named field of the token's vertex into the token's
// result. Tokens whose vertex lacks the field, or holds null, are discarded.
func Property(_ *pipe.Env, args []any, in *gremlin.Gremlin, _ *pipe.State) pipe.Outcome {
	if in == nil {
		return pipe.PullOutcome
	}
	name, ok := pipe.ParseName(args)
	if !ok {
		return pipe.DiscardOutcome
	}
	val, ok := in.Vertex.Property(name)
	if !ok || graph.IsNull(val) {
		return pipe.DiscardOutcome
	}
	in.SetResult(val)
	return pipe.Out(in)
}
