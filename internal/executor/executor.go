// Package executor drives a step program to completion.
//
// The machine keeps three registers: a program counter pc, a done boundary
// (the highest position known to be exhausted) and the carried token. It
// starts at the last position and asks for a result; whenever a position
// cannot produce, control walks back upstream, and whenever a token is
// produced, control walks forward. Every position owns a persistent
// pipe.State, so running the same program again with the same States resumes
// where the previous run stopped.
package executor

import (
	"context"
	"time"

	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/program"
	"github.com/vk/graphene/internal/registry"
)

// States holds the per-position state of one query across runs.
type States struct {
	slots []*pipe.State
}

// Slot returns the state of position pc, creating it on first use.
func (s *States) Slot(pc int) *pipe.State {
	for len(s.slots) <= pc {
		s.slots = append(s.slots, nil)
	}
	if s.slots[pc] == nil {
		s.slots[pc] = &pipe.State{}
	}
	return s.slots[pc]
}

// Len returns the number of positions that have state.
func (s *States) Len() int {
	return len(s.slots)
}

// Reset drops every position's state so the next run starts over.
func (s *States) Reset() {
	s.slots = nil
}

// Stats describes one run.
type Stats struct {
	Steps    int
	Pulls    int
	Results  int
	Duration time.Duration
}

// Executor evaluates programs against one graph with one registry.
type Executor struct {
	registry *registry.Registry
	graph    pipe.Graph
	reporter fault.Reporter
}

// New creates an Executor. A nil reporter discards reports.
func New(reg *registry.Registry, g pipe.Graph, rep fault.Reporter) *Executor {
	if rep == nil {
		rep = fault.Discard
	}
	return &Executor{registry: reg, graph: g, reporter: rep}
}

// Run evaluates prog and returns the tokens that made it past the last
// position, in production order. states must be reused between runs of the
// same program for paging to work; nil means a throwaway state.
func (e *Executor) Run(ctx context.Context, prog program.Program, states *States) ([]*gremlin.Gremlin, Stats) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	if states == nil {
		states = &States{}
	}

	// Each name is resolved once per run so an unknown name is reported once.
	resolved := make(map[string]pipe.Func, len(prog))
	pipes := make([]pipe.Func, len(prog))
	for i, step := range prog {
		fn, ok := resolved[step.Name]
		if !ok {
			fn = e.registry.Resolve(ctx, step.Name, e.reporter)
			resolved[step.Name] = fn
		}
		pipes[i] = fn
	}
	env := &pipe.Env{Ctx: ctx, Graph: e.graph, Reporter: e.reporter}

	logger.Debug("Executor run started.", "program", prog.String(), "steps", len(prog))

	var (
		stats   Stats
		results []*gremlin.Gremlin
		carried *gremlin.Gremlin
		last    = len(prog) - 1
		done    = -1
		pc      = last
	)

	for done < last {
		stats.Steps++
		out := pipes[pc](env, prog[pc].Args, carried, states.Slot(pc))

		switch out.Signal {
		case pipe.Pull, pipe.Discard:
			stats.Pulls++
			carried = nil
			if pc-1 > done {
				pc--
				continue
			}
			done = pc
		case pipe.Done:
			carried = nil
			done = pc
		default:
			carried = out.Token
		}

		pc++
		if pc > last {
			if carried != nil {
				results = append(results, carried)
			}
			carried = nil
			pc--
		}
	}

	stats.Results = len(results)
	stats.Duration = time.Since(start)
	logger.Debug("Executor run finished.", "results", stats.Results, "steps_evaluated", stats.Steps, "duration", stats.Duration)
	return results, stats
}
