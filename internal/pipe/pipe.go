package pipe

import (
	"context"

	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/gremlin"
)

// Signal is the control part of an Outcome.
type Signal int

const (
	// Emit passes Outcome.Token (possibly nil) downstream.
	Emit Signal = iota
	// Pull asks the upstream position for another token.
	Pull
	// Done marks the position as exhausted.
	Done
	// Discard rejects the input token. The engine treats it like Pull.
	Discard
)

func (s Signal) String() string {
	switch s {
	case Emit:
		return "emit"
	case Pull:
		return "pull"
	case Done:
		return "done"
	case Discard:
		return "discard"
	default:
		return "unknown"
	}
}

// Outcome is what a pipe Func returns.
type Outcome struct {
	Token  *gremlin.Gremlin
	Signal Signal
}

// Out emits a token. A nil token is allowed and means "nothing this time".
func Out(g *gremlin.Gremlin) Outcome {
	return Outcome{Token: g, Signal: Emit}
}

var (
	// PullOutcome requests more input.
	PullOutcome = Outcome{Signal: Pull}
	// DoneOutcome signals exhaustion.
	DoneOutcome = Outcome{Signal: Done}
	// DiscardOutcome rejects the input token.
	DiscardOutcome = Outcome{Signal: Discard}
)

// Graph is the read side of the graph that pipe types depend on.
type Graph interface {
	Vertex(id graph.ID) (*graph.Vertex, bool)
	FindVertices(sel graph.Selector) []*graph.Vertex
	OutEdges(v *graph.Vertex) []*graph.Edge
	InEdges(v *graph.Vertex) []*graph.Edge
}

// Env is shared by every pipe invocation of one run.
type Env struct {
	Ctx      context.Context
	Graph    Graph
	Reporter fault.Reporter
}

// Report sends err to the run's reporter.
func (e *Env) Report(err error) {
	if e.Reporter == nil || err == nil {
		return
	}
	ctx := e.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	e.Reporter.Report(ctx, err)
}

// Func is the signature of a pipe type.
type Func func(env *Env, args []any, in *gremlin.Gremlin, st *State) Outcome

// State is the private, persistent memory of one program position.
type State struct {
	// Initialized is set by pipes that resolve their arguments once.
	Initialized bool
	// Vertices is a pending candidate list, consumed from the end.
	Vertices []*graph.Vertex
	// Edges is a pending edge list, consumed from the end.
	Edges []*graph.Edge
	// Token is the input token a pending list was derived from.
	Token *gremlin.Gremlin
	// Taken counts emitted tokens for bounded pipes.
	Taken int
	// Limit caches a resolved count. Negative means unbounded.
	Limit *int
	// Seen records vertex ids already passed.
	Seen map[graph.ID]struct{}
	// EdgeFilter and VertexFilter cache a resolved argument.
	EdgeFilter   *EdgeFilter
	VertexFilter *VertexFilter
	// Custom is free for pipe types registered by embedding code.
	Custom any
}

// PopVertex removes and returns the last pending vertex.
func (s *State) PopVertex() *graph.Vertex {
	n := len(s.Vertices)
	v := s.Vertices[n-1]
	s.Vertices = s.Vertices[:n-1]
	return v
}

// PopEdge removes and returns the last pending edge.
func (s *State) PopEdge() *graph.Edge {
	n := len(s.Edges)
	e := s.Edges[n-1]
	s.Edges = s.Edges[:n-1]
	return e
}

// Identity passes a token through unchanged and pulls when there is none.
// It stands in for unknown pipe types and backs alias names.
func Identity(_ *Env, _ []any, in *gremlin.Gremlin, _ *State) Outcome {
	if in == nil {
		return PullOutcome
	}
	return Out(in)
}
