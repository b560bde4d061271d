// Package query provides the fluent builder that accumulates a step program
// and runs it.
package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/executor"
	"github.com/vk/graphene/internal/program"
	"github.com/vk/graphene/internal/transform"
)

// RunInfo describes a finished run to observers.
type RunInfo struct {
	QueryID string
	Program program.Program
	Stats   executor.Stats
}

// Observer is notified after every run.
type Observer func(ctx context.Context, info RunInfo)

// Query accumulates steps and runs them. Step state persists across Run
// calls, so running the same query again continues where the last run
// stopped. A Query is not safe for concurrent use.
type Query struct {
	id        string
	prog      program.Program
	states    executor.States
	exec      *executor.Executor
	chain     *transform.Chain
	observers []Observer
}

// New creates an empty query. chain may be nil.
func New(exec *executor.Executor, chain *transform.Chain, observers ...Observer) *Query {
	return &Query{
		id:        uuid.NewString(),
		exec:      exec,
		chain:     chain,
		observers: observers,
	}
}

// ID returns the query's unique identifier, used in logs.
func (q *Query) ID() string {
	return q.id
}

// Step appends a step by name. It is how aliases and custom pipe types are
// invoked.
func (q *Query) Step(name string, args ...any) *Query {
	q.prog = append(q.prog, program.New(name, args...))
	return q
}

// Vertex starts from vertices selected by id, by property map, or all of
// them when called without arguments.
func (q *Query) Vertex(args ...any) *Query { return q.Step("vertex", args...) }

// V is shorthand for Vertex.
func (q *Query) V(args ...any) *Query { return q.Vertex(args...) }

// Out follows outgoing edges, optionally filtered by label, label list or
// edge property map.
func (q *Query) Out(filter ...any) *Query { return q.Step("out", filter...) }

// In follows incoming edges with the same filters as Out.
func (q *Query) In(filter ...any) *Query { return q.Step("in", filter...) }

// Property projects a vertex field; tokens without it are dropped.
func (q *Query) Property(name string) *Query { return q.Step("property", name) }

// Unique drops tokens on vertices already seen.
func (q *Query) Unique() *Query { return q.Step("unique") }

// Filter keeps tokens matching a property map or a predicate.
func (q *Query) Filter(arg any) *Query { return q.Step("filter", arg) }

// Take bounds one run to n results.
func (q *Query) Take(n int) *Query { return q.Step("take", n) }

// As labels the current vertex.
func (q *Query) As(label string) *Query { return q.Step("as", label) }

// Back returns to a labeled vertex.
func (q *Query) Back(label string) *Query { return q.Step("back", label) }

// Except drops the labeled vertex.
func (q *Query) Except(label string) *Query { return q.Step("except", label) }

// Merge emits the vertices recorded under each label.
func (q *Query) Merge(labels ...string) *Query {
	args := make([]any, len(labels))
	for i, l := range labels {
		args[i] = l
	}
	return q.Step("merge", args...)
}

// Program returns a copy of the steps as authored, before rewriting.
func (q *Query) Program() program.Program {
	return q.prog.Clone()
}

// Reset forgets all step state so the next Run starts from scratch.
func (q *Query) Reset() {
	q.states.Reset()
}

// Run rewrites the program through the transformer chain and evaluates it.
func (q *Query) Run(ctx context.Context) Results {
	logger := ctxlog.FromContext(ctx).With("query_id", q.id)
	ctx = ctxlog.WithLogger(ctx, logger)

	prog := q.prog
	if q.chain != nil {
		prog = q.chain.Apply(prog)
	}

	tokens, stats := q.exec.Run(ctx, prog, &q.states)
	results := make(Results, len(tokens))
	for i, tok := range tokens {
		results[i] = resultOf(tok)
	}

	info := RunInfo{QueryID: q.id, Program: prog, Stats: stats}
	for _, o := range q.observers {
		o(ctx, info)
	}
	logger.Debug("Query run complete.", "results", len(results))
	return results
}
