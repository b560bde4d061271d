package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/graphene/internal/ctxlog"
	"github.com/vk/graphene/internal/fault"
)

// VertexSpec describes a vertex to insert. When ID is nil the "_id" entry of
// Props is used instead; when both are absent or zero an id is assigned.
// Prop values may be Go scalars or primitive cty values.
type VertexSpec struct {
	ID    any
	Props map[string]any
}

// EdgeSpec describes an edge to insert. Out and In accept a raw id, an ID or
// a *Vertex. When they are nil the "_out" and "_in" entries of Props are
// used, and an empty Label falls back to Props["_label"].
type EdgeSpec struct {
	Out   any
	In    any
	Label string
	Props map[string]any
}

// Option configures a Graph.
type Option func(*Graph)

// WithReporter sets the side channel used to surface mutation failures.
func WithReporter(r fault.Reporter) Option {
	return func(g *Graph) {
		if r != nil {
			g.reporter = r
		}
	}
}

// Graph owns all vertices and edges. See the package documentation for the
// storage model.
type Graph struct {
	vertices []*Vertex
	index    map[ID]*Vertex
	edges    []*Edge
	autoID   int64
	reporter fault.Reporter
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		index:    make(map[ID]*Vertex),
		autoID:   1,
		reporter: fault.LogReporter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reporter returns the graph's error side channel.
func (g *Graph) Reporter() fault.Reporter {
	return g.reporter
}

// AddVertex inserts a vertex and returns its id. On failure the graph is
// unchanged, the error is reported and the zero ID is returned with it.
func (g *Graph) AddVertex(ctx context.Context, spec VertexSpec) (ID, error) {
	id, props, err := g.prepareVertex(spec)
	if err != nil {
		g.reporter.Report(ctx, err)
		return ID{}, err
	}
	if id.IsZero() {
		id = g.nextID()
	}

	v := &Vertex{id: id, props: props}
	g.vertices = append(g.vertices, v)
	g.index[id] = v
	ctxlog.FromContext(ctx).Debug("Vertex added.", "id", id.String())
	return id, nil
}

func (g *Graph) prepareVertex(spec VertexSpec) (ID, Props, error) {
	rawID := spec.ID
	if rawID == nil {
		rawID = spec.Props["_id"]
	}
	id, err := ParseID(rawID)
	if err != nil {
		return ID{}, nil, fmt.Errorf("add vertex: %w", err)
	}
	if !id.IsZero() {
		if _, taken := g.index[id]; taken {
			return ID{}, nil, fmt.Errorf("add vertex: %w", &fault.DuplicateIDError{ID: id.String()})
		}
	}

	props := make(Props, len(spec.Props))
	for k, raw := range spec.Props {
		if k == "_id" {
			continue
		}
		val, err := ValueOf(raw)
		if err != nil {
			return ID{}, nil, fmt.Errorf("add vertex: property %q: %w", k, err)
		}
		props[k] = val
	}
	return id, props, nil
}

// nextID returns the next unused auto id. Explicit integer ids inserted
// earlier are skipped so ids stay unique.
func (g *Graph) nextID() ID {
	for {
		id := IntID(g.autoID)
		g.autoID++
		if _, taken := g.index[id]; !taken {
			return id
		}
	}
}

// AddEdge inserts an edge between two existing vertices. If either endpoint
// is missing the graph is unchanged and a *fault.DanglingEndpointError naming
// the failing side is reported and returned.
func (g *Graph) AddEdge(ctx context.Context, spec EdgeSpec) error {
	e, err := g.prepareEdge(spec)
	if err != nil {
		g.reporter.Report(ctx, err)
		return err
	}

	pos := len(g.edges)
	g.edges = append(g.edges, e)
	tail := g.index[e.out]
	head := g.index[e.in]
	tail.out = append(tail.out, pos)
	head.in = append(head.in, pos)
	ctxlog.FromContext(ctx).Debug("Edge added.", "out", e.out.String(), "in", e.in.String(), "label", e.label)
	return nil
}

func (g *Graph) prepareEdge(spec EdgeSpec) (*Edge, error) {
	inRef, outRef, label := spec.In, spec.Out, spec.Label
	if inRef == nil {
		inRef = spec.Props["_in"]
	}
	if outRef == nil {
		outRef = spec.Props["_out"]
	}
	if label == "" {
		if l, ok := spec.Props["_label"].(string); ok {
			label = l
		}
	}

	// The head is resolved first so a doubly dangling edge reports "in".
	head, err := g.resolve(inRef, fault.SideIn)
	if err != nil {
		return nil, err
	}
	tail, err := g.resolve(outRef, fault.SideOut)
	if err != nil {
		return nil, err
	}

	props := make(Props, len(spec.Props))
	for k, raw := range spec.Props {
		switch k {
		case "_in", "_out", "_label":
			continue
		}
		val, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("add edge: property %q: %w", k, err)
		}
		props[k] = val
	}
	return &Edge{out: tail.id, in: head.id, label: label, props: props}, nil
}

func (g *Graph) resolve(ref any, side fault.Side) (*Vertex, error) {
	id, err := ParseID(ref)
	if err != nil {
		return nil, fmt.Errorf("add edge: %s endpoint: %w", side, err)
	}
	v, ok := g.Vertex(id)
	if !ok {
		return nil, fmt.Errorf("add edge: %w", &fault.DanglingEndpointError{Side: side, ID: id.String()})
	}
	return v, nil
}

// AddVertices inserts each spec in order and returns the ids that were
// assigned. Failures do not stop the batch; they are joined into the
// returned error and the corresponding id slot holds the zero ID.
func (g *Graph) AddVertices(ctx context.Context, specs ...VertexSpec) ([]ID, error) {
	ids := make([]ID, len(specs))
	var errs []error
	for i, spec := range specs {
		id, err := g.AddVertex(ctx, spec)
		if err != nil {
			errs = append(errs, err)
		}
		ids[i] = id
	}
	return ids, errors.Join(errs...)
}

// AddEdges inserts each spec in order, continuing past failures.
func (g *Graph) AddEdges(ctx context.Context, specs ...EdgeSpec) error {
	var errs []error
	for _, spec := range specs {
		if err := g.AddEdge(ctx, spec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load builds a graph from vertex and edge lists. Every element is attempted;
// the returned graph holds everything that succeeded and the error joins the
// failures.
func Load(ctx context.Context, vertices []VertexSpec, edges []EdgeSpec, opts ...Option) (*Graph, error) {
	g := New(opts...)
	_, vErr := g.AddVertices(ctx, vertices...)
	eErr := g.AddEdges(ctx, edges...)
	ctxlog.FromContext(ctx).Debug("Graph loaded.", "vertices", len(g.vertices), "edges", len(g.edges))
	return g, errors.Join(vErr, eErr)
}

// Vertex looks up a vertex by id. The zero ID is never found.
func (g *Graph) Vertex(id ID) (*Vertex, bool) {
	if id.IsZero() {
		return nil, false
	}
	v, ok := g.index[id]
	return v, ok
}

// Lookup resolves a raw id (anything ParseID accepts) to a vertex.
func (g *Graph) Lookup(ref any) (*Vertex, bool) {
	id, err := ParseID(ref)
	if err != nil {
		return nil, false
	}
	return g.Vertex(id)
}

// OutEdges returns the outgoing edges of v in insertion order. The slice is
// freshly allocated; callers may consume it.
func (g *Graph) OutEdges(v *Vertex) []*Edge {
	return g.collect(v.out)
}

// InEdges returns the incoming edges of v in insertion order. The slice is
// freshly allocated; callers may consume it.
func (g *Graph) InEdges(v *Vertex) []*Edge {
	return g.collect(v.in)
}

func (g *Graph) collect(positions []int) []*Edge {
	out := make([]*Edge, len(positions))
	for i, pos := range positions {
		out[i] = g.edges[pos]
	}
	return out
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, len(g.vertices))
	copy(out, g.vertices)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// FindVertices resolves a selector to a list of vertices.
func (g *Graph) FindVertices(sel Selector) []*Vertex {
	switch sel.Kind {
	case SelectIDs:
		out := make([]*Vertex, 0, len(sel.IDs))
		for _, id := range sel.IDs {
			if v, ok := g.Vertex(id); ok {
				out = append(out, v)
			}
		}
		return out
	case SelectMatch:
		var out []*Vertex
		for _, v := range g.vertices {
			if v.Matches(sel.Match) {
				out = append(out, v)
			}
		}
		return out
	default:
		return g.Vertices()
	}
}
