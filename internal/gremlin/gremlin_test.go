package gremlin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

func TestGoTo_SharesState(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := graph.New()
	ctx := context.Background()
	_, err := g.AddVertices(ctx, graph.VertexSpec{ID: 1}, graph.VertexSpec{ID: 2})
	require.NoError(t, err)
	one, _ := g.Vertex(graph.IntID(1))
	two, _ := g.Vertex(graph.IntID(2))
	token := Make(one, nil)

	// --- Act ---
	token.State.Label("start", one)
	moved := token.GoTo(two)

	// --- Assert ---
	assert.Same(t, two, moved.Vertex)
	assert.Same(t, token.State, moved.State)
	labeled, ok := moved.State.Labeled("start")
	require.True(t, ok)
	assert.Same(t, one, labeled)
}

func TestResult(t *testing.T) {
	t.Parallel()

	token := Make(nil, nil)
	_, ok := token.Result()
	assert.False(t, ok)

	token.SetResult(cty.StringVal("Thor"))
	v, ok := token.Result()
	require.True(t, ok)
	assert.Equal(t, "Thor", v.AsString())
}

func TestLabeled_NilState(t *testing.T) {
	t.Parallel()

	var s *State
	_, ok := s.Labeled("x")
	assert.False(t, ok)
}
