package graphene

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/graphene/internal/codec"
	"github.com/vk/graphene/internal/executor"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/program"
	"github.com/vk/graphene/internal/query"
	"github.com/vk/graphene/internal/registry"
	"github.com/vk/graphene/internal/transform"
	"github.com/vk/graphene/modules/filter"
	"github.com/vk/graphene/modules/labels"
	"github.com/vk/graphene/modules/property"
	"github.com/vk/graphene/modules/take"
	"github.com/vk/graphene/modules/traversal"
	"github.com/vk/graphene/modules/vertex"
)

type (
	ID         = graph.ID
	Graph      = graph.Graph
	Vertex     = graph.Vertex
	Edge       = graph.Edge
	Props      = graph.Props
	VertexSpec = graph.VertexSpec
	EdgeSpec   = graph.EdgeSpec
	Step       = program.Step
	Program    = program.Program
	Query      = query.Query
	Result     = query.Result
	Results    = query.Results
	RunInfo    = query.RunInfo
	Observer   = query.Observer
	PipeFunc   = pipe.Func
	Reporter   = fault.Reporter
	Module     = registry.Module
	Transform  = transform.Func
)

var (
	ErrDuplicateID        = fault.ErrDuplicateID
	ErrDanglingEndpoint   = fault.ErrDanglingEndpoint
	ErrUnknownPipeType    = fault.ErrUnknownPipeType
	ErrDuplicatePipeType  = fault.ErrDuplicatePipeType
	ErrInvalidFilter      = fault.ErrInvalidFilter
	ErrInvalidTransformer = fault.ErrInvalidTransformer
	ErrInvalidValue       = fault.ErrInvalidValue
)

// S builds a step.
func S(name string, args ...any) Step {
	return program.New(name, args...)
}

// coreModules is the definitive list of pipe type modules compiled into
// every DB.
var coreModules = []registry.Module{
	&vertex.Module{},
	&traversal.Module{},
	&property.Module{},
	&filter.Module{},
	&take.Module{},
	&labels.Module{},
}

type options struct {
	reporter  fault.Reporter
	graph     *graph.Graph
	observers []query.Observer
	modules   []registry.Module
}

// Option configures a DB.
type Option func(*options)

// WithReporter sets the side channel for recoverable failures. The default
// logs a warning through the logger carried by the context.
func WithReporter(r fault.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

// WithGraph wraps an existing graph instead of creating an empty one.
func WithGraph(g *graph.Graph) Option {
	return func(o *options) { o.graph = g }
}

// WithRunObserver registers a callback invoked after every query run.
func WithRunObserver(obs query.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// WithModules registers extra pipe type modules next to the built-in ones.
func WithModules(mods ...registry.Module) Option {
	return func(o *options) { o.modules = append(o.modules, mods...) }
}

// DB is one query engine instance.
type DB struct {
	graph     *graph.Graph
	registry  *registry.Registry
	chain     *transform.Chain
	reporter  fault.Reporter
	observers []query.Observer
	exec      *executor.Executor
	aliases   map[string]struct{}
}

// New creates a DB with the built-in pipe types registered.
func New(opts ...Option) *DB {
	o := options{reporter: fault.LogReporter{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = fault.Discard
	}
	g := o.graph
	if g == nil {
		g = graph.New(graph.WithReporter(o.reporter))
	}

	mods := append(append([]registry.Module{}, coreModules...), o.modules...)
	reg := registry.NewWithModules(mods...)

	return &DB{
		graph:     g,
		registry:  reg,
		chain:     transform.NewChain(),
		reporter:  o.reporter,
		observers: o.observers,
		exec:      executor.New(reg, g, o.reporter),
		aliases:   make(map[string]struct{}),
	}
}

// Graph returns the underlying graph.
func (db *DB) Graph() *graph.Graph {
	return db.graph
}

// Registry returns the DB's pipe type registry.
func (db *DB) Registry() *registry.Registry {
	return db.registry
}

// Reporter returns the DB's error side channel.
func (db *DB) Reporter() fault.Reporter {
	return db.reporter
}

// AddVertex inserts a vertex. See graph.Graph.AddVertex.
func (db *DB) AddVertex(ctx context.Context, spec VertexSpec) (ID, error) {
	return db.graph.AddVertex(ctx, spec)
}

// AddEdge inserts an edge. See graph.Graph.AddEdge.
func (db *DB) AddEdge(ctx context.Context, spec EdgeSpec) error {
	return db.graph.AddEdge(ctx, spec)
}

// Load inserts vertices then edges, continuing past failures.
func (db *DB) Load(ctx context.Context, vertices []VertexSpec, edges []EdgeSpec) error {
	_, vErr := db.graph.AddVertices(ctx, vertices...)
	eErr := db.graph.AddEdges(ctx, edges...)
	if vErr != nil || eErr != nil {
		return fmt.Errorf("load graph: %w", errors.Join(vErr, eErr))
	}
	return nil
}

// Query returns an empty query bound to this DB.
func (db *DB) Query() *Query {
	return query.New(db.exec, db.chain, db.observers...)
}

// V starts a query at the selected vertices.
func (db *DB) V(args ...any) *Query {
	return db.Query().Vertex(args...)
}

// AddPipeType registers a custom pipe type, invoked with Query.Step.
func (db *DB) AddPipeType(name string, fn PipeFunc) error {
	if err := db.registry.Register(name, fn); err != nil {
		db.reporter.Report(context.Background(), err)
		return err
	}
	return nil
}

// AddTransformer registers a program rewrite. Higher priorities run first.
func (db *DB) AddTransformer(fn Transform, priority int) error {
	if err := db.chain.Add(fn, priority); err != nil {
		db.reporter.Report(context.Background(), err)
		return err
	}
	return nil
}

// AddAlias makes name expand into steps wherever it appears in a program.
// An alias named like a registered pipe type replaces it; the replacement is
// reported with ErrDuplicatePipeType and the alias is still added.
func (db *DB) AddAlias(name string, steps Program) error {
	db.claimAlias(name)
	return db.AddTransformer(transform.Alias(name, steps), transform.AliasPriority)
}

// AddLegacyAlias renames name to target, filling missing positional
// arguments from defaults. Shadowing is handled as in AddAlias.
func (db *DB) AddLegacyAlias(name, target string, defaults ...any) error {
	db.claimAlias(name)
	return db.AddTransformer(transform.LegacyAlias(name, target, defaults), transform.AliasPriority)
}

// claimAlias registers name as a placeholder pipe type.
func (db *DB) claimAlias(name string) {
	_, isAlias := db.aliases[name]
	if _, taken := db.registry.Lookup(name); taken && !isAlias {
		db.reporter.Report(context.Background(), fmt.Errorf("alias %q replaces pipe type: %w", name, ErrDuplicatePipeType))
	}
	db.aliases[name] = struct{}{}
	db.registry.Set(name, pipe.Identity)
}

// Transform returns prog as it would run, after every rewrite.
func (db *DB) Transform(prog Program) Program {
	return db.chain.Apply(prog)
}

// MarshalJSON renders the graph in canonical form.
func (db *DB) MarshalJSON() ([]byte, error) {
	return codec.Marshal(db.graph)
}

// String returns the canonical JSON form of the graph.
func (db *DB) String() string {
	data, err := codec.Marshal(db.graph)
	if err != nil {
		return fmt.Sprintf("graphene.DB(%v)", err)
	}
	return string(data)
}
