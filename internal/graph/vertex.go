package graph

import (
	"github.com/zclconf/go-cty/cty"
)

// Vertex is a node of the graph. Its id is immutable once inserted.
type Vertex struct {
	id    ID
	props Props
	out   []int
	in    []int
}

// ID returns the vertex id.
func (v *Vertex) ID() ID {
	return v.id
}

// Props returns a copy of the vertex properties. The "_id" pseudo-property
// is not included.
func (v *Vertex) Props() Props {
	return v.props.Clone()
}

// Property returns a named property. "_id" resolves to the vertex id.
func (v *Vertex) Property(name string) (cty.Value, bool) {
	if name == "_id" {
		return v.id.Value(), true
	}
	val, ok := v.props[name]
	return val, ok
}

// Matches reports whether every entry of sel equals the corresponding
// property of v. Extra properties on v are ignored.
func (v *Vertex) Matches(sel Props) bool {
	return matches(v.Property, sel)
}

// OutDegree returns the number of outgoing edges.
func (v *Vertex) OutDegree() int { return len(v.out) }

// InDegree returns the number of incoming edges.
func (v *Vertex) InDegree() int { return len(v.in) }

// Edge connects a tail ("out") vertex to a head ("in") vertex.
type Edge struct {
	out   ID
	in    ID
	label string
	props Props
}

// Out returns the id of the tail vertex.
func (e *Edge) Out() ID { return e.out }

// In returns the id of the head vertex.
func (e *Edge) In() ID { return e.in }

// Label returns the edge label, which may be empty.
func (e *Edge) Label() string { return e.label }

// Props returns a copy of the edge properties.
func (e *Edge) Props() Props {
	return e.props.Clone()
}

// Property returns a named property. "_label" resolves to the label when it
// is set.
func (e *Edge) Property(name string) (cty.Value, bool) {
	if name == "_label" && e.label != "" {
		return cty.StringVal(e.label), true
	}
	val, ok := e.props[name]
	return val, ok
}

// Matches reports whether every entry of sel equals the corresponding edge
// property.
func (e *Edge) Matches(sel Props) bool {
	return matches(e.Property, sel)
}
