package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/graph"
	"github.com/vk/graphene/internal/testutil"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGetDelete(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	s := openStore(t)

	// --- Act ---
	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "a"))
	_, missingErr := s.Get(ctx, "a")

	// --- Assert ---
	assert.Equal(t, []byte("1"), got)
	assert.ErrorIs(t, missingErr, ErrNotFound)
}

func TestStore_KeysByPrefix(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	s := openStore(t)
	for _, k := range []string{"b:2", "a:1", "b:1"} {
		require.NoError(t, s.Put(ctx, k, []byte("x")))
	}

	// --- Act ---
	keys, err := s.Keys(ctx, "b:")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"b:1", "b:2"}, keys)
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := Open(Config{})

	// --- Assert ---
	assert.Error(t, err)
}

func TestOpen_OnDisk(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()

	// --- Act ---
	s, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(ctx, "k")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestSaveLoad_AnswersSameQueries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	s := openStore(t)
	original, _ := testutil.NorseGraph(t)

	// --- Act ---
	require.NoError(t, Save(ctx, s, "", original))
	restored, err := Load(ctx, s, DefaultName, graph.WithReporter(fault.Discard))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, original.VertexCount(), restored.VertexCount())
	assert.Equal(t, original.EdgeCount(), restored.EdgeCount())
	thor, ok := restored.Vertex(graph.StringID("Thor"))
	require.True(t, ok)
	var parents []graph.ID
	for _, e := range restored.OutEdges(thor) {
		parents = append(parents, e.In())
	}
	assert.Equal(t, testutil.StringIDs("Jörð", "Odin"), parents)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := Load(context.Background(), openStore(t), "nope")

	// --- Assert ---
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNames(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	s := openStore(t)
	g := graph.New(graph.WithReporter(fault.Discard))
	require.NoError(t, Save(ctx, s, "norse", g))
	require.NoError(t, Save(ctx, s, "family", g))
	require.NoError(t, s.Put(ctx, "other", []byte("x")))

	// --- Act ---
	names, err := Names(ctx, s)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"family", "norse"}, names)
}
