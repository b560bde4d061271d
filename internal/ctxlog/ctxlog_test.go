package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsEmbeddedLogger(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	// --- Act ---
	got := FromContext(ctx)
	got.Info("hello")

	// --- Assert ---
	require.Same(t, logger, got)
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	// --- Act ---
	got := FromContext(context.Background())

	// --- Assert ---
	assert.NotNil(t, got)
}
