package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/fault"
	"github.com/vk/graphene/internal/program"
)

// appendStep returns a rewrite that tags the program so ordering is visible.
func appendStep(name string) Func {
	return func(prog program.Program) program.Program {
		return append(prog, program.New(name))
	}
}

func TestChain_OrdersByPriorityThenInsertion(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := NewChain()
	require.NoError(t, c.Add(appendStep("low"), 1))
	require.NoError(t, c.Add(appendStep("high-a"), 10))
	require.NoError(t, c.Add(appendStep("mid"), 5))
	require.NoError(t, c.Add(appendStep("high-b"), 10))
	require.NoError(t, c.Add(appendStep("negative"), -3))

	// --- Act ---
	out := c.Apply(nil)

	// --- Assert ---
	assert.Equal(t, []string{"high-a", "high-b", "mid", "low", "negative"}, out.Names())
	assert.Equal(t, 5, c.Len())
}

func TestChain_RejectsNil(t *testing.T) {
	t.Parallel()

	c := NewChain()
	err := c.Add(nil, 1)
	require.ErrorIs(t, err, fault.ErrInvalidTransformer)
	assert.Zero(t, c.Len())
}

func TestChain_ApplyLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := NewChain()
	require.NoError(t, c.Add(func(p program.Program) program.Program {
		p[0].Name = "rewritten"
		return p
	}, 0))
	in := program.Program{program.New("vertex", 1)}

	// --- Act ---
	out := c.Apply(in)

	// --- Assert ---
	assert.Equal(t, "vertex", in[0].Name)
	assert.Equal(t, "rewritten", out[0].Name)
}

func TestAlias_ExpandsEveryUse(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	rewrite := Alias("grandparents", program.Program{
		program.New("out", "parent"),
		program.New("out", "parent"),
	})
	prog := program.Program{
		program.New("vertex", "Thor"),
		program.New("grandparents"),
		program.New("grandparents"),
		program.New("unique"),
	}

	// --- Act ---
	out := rewrite(prog)

	// --- Assert ---
	assert.Equal(t, []string{"vertex", "out", "out", "out", "out", "unique"}, out.Names())
	assert.Equal(t, []any{"parent"}, out[1].Args)
	out[1].Args[0] = "child"
	assert.Equal(t, "parent", out[3].Args[0], "each expansion owns its arguments")
}

func TestLegacyAlias_MergesDefaults(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []any
		defaults []any
		expected []any
	}{
		{"defaults fill empty call", nil, []any{"parent"}, []any{"parent"}},
		{"caller wins", []any{"child"}, []any{"parent"}, []any{"child"}},
		{"nil slot falls back", []any{nil, 2}, []any{"parent", 1, true}, []any{"parent", 2, true}},
		{"extra caller args kept", []any{"a", "b"}, []any{"x"}, []any{"a", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rewrite := LegacyAlias("parents", "out", tc.defaults)
			out := rewrite(program.Program{program.New("vertex", 1), program.New("parents", tc.args...)})

			require.Len(t, out, 2)
			assert.Equal(t, "out", out[1].Name)
			assert.Equal(t, tc.expected, out[1].Args)
		})
	}
}
