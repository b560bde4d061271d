// Package take provides the pipe type that bounds a run's output.
package take

import (
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the pipe type with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("take", Take)
}

// Take passes at most N tokens, then signals done and resets its counter so
// the next run of the same query returns the next batch. An invalid count is
// reported and leaves the step unbounded.
func Take(env *pipe.Env, args []any, in *gremlin.Gremlin, st *pipe.State) pipe.Outcome {
	if st.Limit == nil {
		n, err := pipe.ParseCount(args)
		if err != nil {
			env.Report(err)
			n = -1
		}
		st.Limit = &n
	}

	if limit := *st.Limit; limit >= 0 && st.Taken == limit {
		st.Taken = 0
		return pipe.DoneOutcome
	}
	if in == nil {
		return pipe.PullOutcome
	}
	st.Taken++
	return pipe.Out(in)
}
