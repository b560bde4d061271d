package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
)

func newTestGraph(t *testing.T) (*Graph, *fault.Collector) {
	t.Helper()
	c := &fault.Collector{}
	return New(WithReporter(c)), c
}

func ids(vs []*Vertex) []ID {
	out := make([]ID, len(vs))
	for i, v := range vs {
		out[i] = v.ID()
	}
	return out
}

func TestAddVertex_AutoIDsStartAtOne(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()

	// --- Act ---
	first, err1 := g.AddVertex(ctx, VertexSpec{Props: map[string]any{"name": "a"}})
	second, err2 := g.AddVertex(ctx, VertexSpec{})
	third, err3 := g.AddVertex(ctx, VertexSpec{})

	// --- Assert ---
	require.NoError(t, errors.Join(err1, err2, err3))
	assert.Equal(t, []ID{IntID(1), IntID(2), IntID(3)}, []ID{first, second, third})
}

func TestAddVertex_AutoIDSkipsExplicitIDs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertex(ctx, VertexSpec{ID: 1})
	require.NoError(t, err)

	// --- Act ---
	auto, err := g.AddVertex(ctx, VertexSpec{})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, IntID(2), auto)
}

func TestAddVertex_ExplicitIDFromProps(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)

	// --- Act ---
	id, err := g.AddVertex(context.Background(), VertexSpec{Props: map[string]any{"_id": "Thor", "species": "Aesir"}})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, StringID("Thor"), id)
	v, ok := g.Vertex(id)
	require.True(t, ok)
	_, hasID := v.Props()["_id"]
	assert.False(t, hasID, "_id must not be stored as an ordinary property")
	species, ok := v.Property("species")
	require.True(t, ok)
	assert.Equal(t, "Aesir", GoValue(species))
}

func TestAddVertex_DuplicateIDRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, c := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertex(ctx, VertexSpec{ID: 7})
	require.NoError(t, err)

	// --- Act ---
	id, err := g.AddVertex(ctx, VertexSpec{ID: 7, Props: map[string]any{"x": 1}})

	// --- Assert ---
	require.ErrorIs(t, err, fault.ErrDuplicateID)
	assert.True(t, id.IsZero())
	assert.Equal(t, 1, g.VertexCount())
	assert.Equal(t, 1, c.Len(), "the failure must also be reported")
}

func TestAddVertex_InvalidPropertyRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)

	// --- Act ---
	_, err := g.AddVertex(context.Background(), VertexSpec{Props: map[string]any{"tags": []string{"a"}}})

	// --- Assert ---
	require.ErrorIs(t, err, fault.ErrInvalidValue)
	assert.Zero(t, g.VertexCount())
}

func TestAddEdge_AdjacencySymmetry(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertices(ctx, VertexSpec{ID: 1}, VertexSpec{ID: 2}, VertexSpec{ID: 3})
	require.NoError(t, err)

	// --- Act ---
	err = g.AddEdge(ctx, EdgeSpec{Out: 1, In: 2, Label: "knows"})

	// --- Assert ---
	require.NoError(t, err)
	one, _ := g.Vertex(IntID(1))
	two, _ := g.Vertex(IntID(2))
	three, _ := g.Vertex(IntID(3))

	out := g.OutEdges(one)
	require.Len(t, out, 1)
	assert.Equal(t, IntID(2), out[0].In())
	assert.Equal(t, "knows", out[0].Label())

	in := g.InEdges(two)
	require.Len(t, in, 1)
	assert.Equal(t, IntID(1), in[0].Out())

	assert.Empty(t, g.InEdges(one))
	assert.Empty(t, g.OutEdges(two))
	assert.Zero(t, three.InDegree()+three.OutDegree())
}

func TestAddEdge_DanglingEndpoint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		spec EdgeSpec
		side fault.Side
	}{
		{"missing head", EdgeSpec{Out: 1, In: 99}, fault.SideIn},
		{"missing tail", EdgeSpec{Out: 99, In: 1}, fault.SideOut},
		{"both missing reports head", EdgeSpec{Out: 98, In: 99}, fault.SideIn},
		{"zero id is missing", EdgeSpec{Out: 1, In: 0}, fault.SideIn},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			g, c := newTestGraph(t)
			ctx := context.Background()
			_, err := g.AddVertex(ctx, VertexSpec{ID: 1})
			require.NoError(t, err)

			// --- Act ---
			err = g.AddEdge(ctx, tc.spec)

			// --- Assert ---
			var dangling *fault.DanglingEndpointError
			require.ErrorAs(t, err, &dangling)
			assert.Equal(t, tc.side, dangling.Side)
			assert.Zero(t, g.EdgeCount())
			v, _ := g.Vertex(IntID(1))
			assert.Zero(t, v.OutDegree()+v.InDegree(), "no partial adjacency mutation")
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestAddEdge_AcceptsVerticesAndPropsEndpoints(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertices(ctx, VertexSpec{ID: "a"}, VertexSpec{ID: "b"})
	require.NoError(t, err)
	a, _ := g.Vertex(StringID("a"))

	// --- Act ---
	err1 := g.AddEdge(ctx, EdgeSpec{Out: a, In: "b"})
	err2 := g.AddEdge(ctx, EdgeSpec{Props: map[string]any{"_out": "b", "_in": "a", "_label": "back", "weight": 2}})

	// --- Assert ---
	require.NoError(t, errors.Join(err1, err2))
	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "back", edges[1].Label())
	_, hasLabel := edges[1].Props()["_label"]
	assert.False(t, hasLabel)
	w, ok := edges[1].Property("weight")
	require.True(t, ok)
	assert.Equal(t, int64(2), GoValue(w))
}

func TestVertex_FalsyIDsAreNotFound(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	// 0 is treated as "no id" and receives an auto id instead.
	id, err := g.AddVertex(ctx, VertexSpec{ID: 0})
	require.NoError(t, err)

	// --- Act ---
	_, zeroFound := g.Lookup(0)
	_, emptyFound := g.Lookup("")

	// --- Assert ---
	assert.Equal(t, IntID(1), id)
	assert.False(t, zeroFound)
	assert.False(t, emptyFound)
}

func TestFindVertices(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertices(ctx,
		VertexSpec{ID: 1, Props: map[string]any{"kind": "god", "home": "Asgard"}},
		VertexSpec{ID: 2, Props: map[string]any{"kind": "god", "home": "Vanaheim"}},
		VertexSpec{ID: 3, Props: map[string]any{"kind": "giant"}},
	)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		selector Selector
		expected []ID
	}{
		{"all in insertion order", All(), []ID{IntID(1), IntID(2), IntID(3)}},
		{"ids in list order, misses dropped", ByIDs(IntID(3), IntID(42), IntID(1)), []ID{IntID(3), IntID(1)}},
		{"single field match", Matching(MustProps(map[string]any{"kind": "god"})), []ID{IntID(1), IntID(2)}},
		{"every field must match", Matching(MustProps(map[string]any{"kind": "god", "home": "Asgard"})), []ID{IntID(1)}},
		{"match on _id", Matching(MustProps(map[string]any{"_id": 3})), []ID{IntID(3)}},
		{"missing field never matches", Matching(MustProps(map[string]any{"home": nil})), []ID{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Act ---
			got := g.FindVertices(tc.selector)

			// --- Assert ---
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestOutEdges_ReturnsWorkingCopy(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := newTestGraph(t)
	ctx := context.Background()
	_, err := g.AddVertices(ctx, VertexSpec{ID: 1}, VertexSpec{ID: 2}, VertexSpec{ID: 3})
	require.NoError(t, err)
	require.NoError(t, g.AddEdges(ctx, EdgeSpec{Out: 1, In: 2}, EdgeSpec{Out: 1, In: 3}))
	v, _ := g.Vertex(IntID(1))

	// --- Act ---
	working := g.OutEdges(v)
	working = working[:0]

	// --- Assert ---
	assert.Empty(t, working)
	assert.Len(t, g.OutEdges(v), 2)
}

func TestLoad_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	vertices := []VertexSpec{{ID: 1}, {ID: 1}, {ID: 2}}
	edges := []EdgeSpec{{Out: 1, In: 2}, {Out: 1, In: 5}}

	// --- Act ---
	g, err := Load(context.Background(), vertices, edges, WithReporter(fault.Discard))

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrDuplicateID)
	assert.ErrorIs(t, err, fault.ErrDanglingEndpoint)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())
}
