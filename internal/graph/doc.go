// Package graph implements the in-memory directed property graph that
// queries traverse.
//
// # Storage Model
//
// A Graph owns two arena-style collections: an ordered slice of vertices and
// an ordered slice of edges. Edges refer to their endpoints by ID and vertices
// refer to their incident edges by position in the edge arena, so there are
// no ownership cycles between the two. Every dereference goes through the
// graph's id index.
//
//	Graph
//	 ├── vertices []*Vertex   (insertion order)
//	 ├── index    map[ID]*Vertex
//	 └── edges    []*Edge     (insertion order)
//	        Vertex.out / Vertex.in hold positions into edges
//	        Edge.out / Edge.in hold vertex IDs
//
// # Identity
//
// Vertex ids are either integers or strings (see ID). A vertex inserted
// without an id receives the next free integer id, counting from 1. The zero
// ID (integer 0 or the empty string) means "no id" everywhere: it is never
// stored and never found by a lookup.
//
// # Properties
//
// Vertex and edge properties are go-cty values restricted to the primitive
// kinds (number, string, bool) and null. Adjacency is never exposed as a
// property. The pseudo-properties "_id" on vertices and "_label" on edges are
// resolved by Property so filters and selectors can address them.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent mutation. Callers must finish all
// AddVertex/AddEdge calls before traversals start, or serialize access
// themselves.
package graph
