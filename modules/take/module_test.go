package take

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/gremlin"
	"github.com/vk/graphene/internal/pipe"
	"github.com/vk/graphene/internal/testutil"
)

func TestTake_BatchesAndResets(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := testutil.FamilyGraph(t)
	env := &pipe.Env{Ctx: context.Background(), Graph: g, Reporter: fault.Discard}
	v, ok := g.Lookup(1)
	require.True(t, ok)
	tok := gremlin.Make(v, nil)
	st := &pipe.State{}
	args := []any{2}

	// --- Act & Assert ---
	assert.Equal(t, pipe.Emit, Take(env, args, tok, st).Signal)
	assert.Equal(t, pipe.Emit, Take(env, args, tok, st).Signal)
	assert.Equal(t, pipe.Done, Take(env, args, tok, st).Signal)
	assert.Equal(t, 0, st.Taken, "counter resets when the batch is complete")
	assert.Equal(t, pipe.Pull, Take(env, args, nil, st).Signal)
	require.NotNil(t, st.Limit)
	assert.Equal(t, 2, *st.Limit)
	assert.Nil(t, st.Custom, "Custom stays free for embedder pipe types")
}

func TestTake_InvalidCountIsUnbounded(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g, _ := testutil.FamilyGraph(t)
	c := &fault.Collector{}
	env := &pipe.Env{Ctx: context.Background(), Graph: g, Reporter: c}
	v, _ := g.Lookup(1)
	tok := gremlin.Make(v, nil)
	st := &pipe.State{}

	// --- Act ---
	var signals []pipe.Signal
	for range 5 {
		signals = append(signals, Take(env, []any{"many"}, tok, st).Signal)
	}

	// --- Assert ---
	assert.Equal(t, []pipe.Signal{pipe.Emit, pipe.Emit, pipe.Emit, pipe.Emit, pipe.Emit}, signals)
	require.Equal(t, 1, c.Len())
	assert.ErrorIs(t, c.Errors()[0], fault.ErrInvalidValue)
	require.NotNil(t, st.Limit)
	assert.Negative(t, *st.Limit)
}
