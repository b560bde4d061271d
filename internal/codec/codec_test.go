package codec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/testutil"
)

func TestMarshal_CanonicalForm(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	g := graph.New(graph.WithReporter(fault.Discard))
	_, err := g.AddVertex(ctx, graph.VertexSpec{ID: 1, Props: map[string]any{"name": "a"}})
	require.NoError(t, err)
	_, err = g.AddVertex(ctx, graph.VertexSpec{ID: "x"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(ctx, graph.EdgeSpec{Out: 1, In: "x", Label: "knows", Props: map[string]any{"weight": 0.5}}))
	require.NoError(t, g.AddEdge(ctx, graph.EdgeSpec{Out: "x", In: 1}))

	// --- Act ---
	data, err := Marshal(g)

	// --- Assert ---
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"V": [{"_id": 1, "name": "a"}, {"_id": "x"}],
		"E": [{"_out": 1, "_in": "x", "_label": "knows", "weight": 0.5}, {"_out": "x", "_in": 1}]
	}`, string(data))
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	original, _ := testutil.NorseGraph(t)

	// --- Act ---
	data, err := Marshal(original)
	require.NoError(t, err)
	restored, err := Unmarshal(ctx, data, graph.WithReporter(fault.Discard))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, testutil.IDs(original.Vertices()), testutil.IDs(restored.Vertices()))
	for i, v := range original.Vertices() {
		assert.Equal(t, v.Props().ToGo(), restored.Vertices()[i].Props().ToGo())
	}
	require.Equal(t, original.EdgeCount(), restored.EdgeCount())
	for i, e := range original.Edges() {
		got := restored.Edges()[i]
		assert.Equal(t, e.Out(), got.Out())
		assert.Equal(t, e.In(), got.In())
		assert.Equal(t, e.Label(), got.Label())
	}
	thor, ok := restored.Vertex(graph.StringID("Thor"))
	require.True(t, ok)
	_, hasOut := thor.Property("_out")
	assert.False(t, hasOut)
	assert.Equal(t, 2, thor.OutDegree())
}

func TestUnmarshal_KeepsGoodElements(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := &fault.Collector{}
	data := []byte(`{"V":[{"_id":1},{"_id":1},{"_id":2,"score":1.25}],"E":[{"_out":1,"_in":3},{"_out":1,"_in":2,"_label":"x"}]}`)

	// --- Act ---
	g, err := Unmarshal(context.Background(), data, graph.WithReporter(c))

	// --- Assert ---
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrDuplicateID)
	assert.ErrorIs(t, err, fault.ErrDanglingEndpoint)
	assert.Equal(t, 2, c.Len())
	require.NotNil(t, g)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())
	v, ok := g.Vertex(graph.IntID(2))
	require.True(t, ok)
	score, _ := v.Property("score")
	assert.Equal(t, 1.25, graph.GoValue(score))
}

func TestUnmarshal_RejectsMalformed(t *testing.T) {
	t.Parallel()

	// --- Act ---
	g, err := Unmarshal(context.Background(), []byte(`{"V": [`))

	// --- Assert ---
	require.Error(t, err)
	assert.Nil(t, g)
}

func TestLoadFile_ByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"family.yaml": `
V:
  - {_id: 1, name: Fred}
  - {_id: 2, name: Bob}
E:
  - {_out: 1, _in: 2, _label: son}
`,
		"family.json": `{"V":[{"_id":1,"name":"Fred"},{"_id":2,"name":"Bob"}],"E":[{"_out":1,"_in":2,"_label":"son"}]}`,
		"family.txt":  `nope`,
	})
	ctx := context.Background()

	for _, name := range []string{"family.yaml", "family.json"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			g, err := LoadFile(ctx, filepath.Join(dir, name), graph.WithReporter(fault.Discard))

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, testutil.IntIDs(1, 2), testutil.IDs(g.Vertices()))
			require.Len(t, g.Edges(), 1)
			assert.Equal(t, "son", g.Edges()[0].Label())
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		t.Parallel()

		// --- Act ---
		_, err := LoadFile(ctx, filepath.Join(dir, "family.txt"))

		// --- Assert ---
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
