package fault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/ctxlog"
)

func TestTypedErrors_UnwrapToSentinels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		sentinel error
		kind     string
	}{
		{"duplicate id", &DuplicateIDError{ID: "7"}, ErrDuplicateID, "duplicate_id"},
		{"dangling", &DanglingEndpointError{Side: SideIn, ID: "9"}, ErrDanglingEndpoint, "dangling_endpoint"},
		{"unknown pipe", &UnknownPipeTypeError{Name: "nope"}, ErrUnknownPipeType, "unknown_pipe_type"},
		{"invalid filter", &InvalidFilterError{Arg: 42}, ErrInvalidFilter, "invalid_filter"},
		{"wrapped transformer", fmt.Errorf("add: %w", ErrInvalidTransformer), ErrInvalidTransformer, "invalid_transformer"},
		{"unrelated", errors.New("boom"), nil, "other"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.sentinel != nil {
				assert.ErrorIs(t, tc.err, tc.sentinel)
			}
			assert.Equal(t, tc.kind, Kind(tc.err))
		})
	}
}

func TestDanglingEndpointError_CarriesSide(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	err := fmt.Errorf("add edge: %w", &DanglingEndpointError{Side: SideOut, ID: "3"})

	// --- Act ---
	var dangling *DanglingEndpointError
	ok := errors.As(err, &dangling)

	// --- Assert ---
	require.True(t, ok)
	assert.Equal(t, SideOut, dangling.Side)
	assert.Contains(t, err.Error(), `out vertex "3" not found`)
}

func TestCollector_RecordsInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	c := &Collector{}
	first, second := errors.New("first"), errors.New("second")

	// --- Act ---
	c.Report(context.Background(), first)
	c.Report(context.Background(), nil)
	c.Report(context.Background(), second)

	// --- Assert ---
	require.Equal(t, 2, c.Len())
	assert.Equal(t, []error{first, second}, c.Errors())
	c.Reset()
	assert.Zero(t, c.Len())
}

func TestMulti_FansOut(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, b := &Collector{}, &Collector{}
	r := Multi(a, nil, b)

	// --- Act ---
	r.Report(context.Background(), ErrDuplicateID)

	// --- Assert ---
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestLogReporter_WritesWarning(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	// --- Act ---
	LogReporter{}.Report(ctx, &UnknownPipeTypeError{Name: "ghost"})

	// --- Assert ---
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=unknown_pipe_type")
	assert.Contains(t, out, "ghost")
}
