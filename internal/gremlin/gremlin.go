// Package gremlin defines the traversal token that flows through a query
// pipeline.
//
// A Gremlin points at one vertex and carries a State shared with every token
// cloned from it, so labels recorded with "as" before a branch are visible on
// all branches after it.
package gremlin

import (
	"github.com/vk/graphene/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// State is the mutable map carried by a traversal.
type State struct {
	// As holds vertices labeled by the "as" step.
	As map[string]*graph.Vertex
	// Vars holds arbitrary values carried between steps.
	Vars map[string]cty.Value
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		As:   make(map[string]*graph.Vertex),
		Vars: make(map[string]cty.Value),
	}
}

// Label records v under name.
func (s *State) Label(name string, v *graph.Vertex) {
	if s.As == nil {
		s.As = make(map[string]*graph.Vertex)
	}
	s.As[name] = v
}

// Labeled returns the vertex recorded under name.
func (s *State) Labeled(name string) (*graph.Vertex, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.As[name]
	return v, ok
}

// Gremlin is a traversal token.
type Gremlin struct {
	Vertex *graph.Vertex
	State  *State

	result    cty.Value
	hasResult bool
}

// Make creates a token on v. A nil state starts a fresh one.
func Make(v *graph.Vertex, state *State) *Gremlin {
	if state == nil {
		state = NewState()
	}
	return &Gremlin{Vertex: v, State: state}
}

// GoTo returns a new token on v sharing this token's state.
func (g *Gremlin) GoTo(v *graph.Vertex) *Gremlin {
	return Make(v, g.State)
}

// SetResult stores a projected value on the token.
func (g *Gremlin) SetResult(v cty.Value) {
	g.result = v
	g.hasResult = true
}

// Result returns the projected value, if one was stored.
func (g *Gremlin) Result() (cty.Value, bool) {
	return g.result, g.hasResult
}
