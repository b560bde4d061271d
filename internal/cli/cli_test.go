package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/graphene/internal/testutil"
)

const familyYAML = `
V:
  - {_id: 1, name: Fred}
  - {_id: 2, name: Bob}
  - {_id: 3, name: Tom}
E:
  - {_out: 1, _in: 2, _label: son}
  - {_out: 2, _in: 3, _label: son}
`

const familyHCL = `
query "grandsons" {
  step "vertex" {
    args = [1]
  }
  step "out" {
    args = ["son"]
  }
  step "out" {
    args = ["son"]
  }
  step "property" {
    args = ["name"]
  }
}
`

func TestExecute_Query(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{"family.yaml": familyYAML, "family.hcl": familyHCL})
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	args := []string{"query", "--dataset", filepath.Join(dir, "family.yaml"), "--config", filepath.Join(dir, "family.hcl"), "grandsons"}

	// --- Act ---
	err := Execute(context.Background(), args, out, errOut)

	// --- Assert ---
	require.NoError(t, err, errOut.String())
	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "grandsons", line["query"])
	assert.Equal(t, []any{"Tom"}, line["results"])
}

func TestExecute_SaveThenExport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{"family.yaml": familyYAML})
	db := filepath.Join(dir, "db")
	ctx := context.Background()

	// --- Act ---
	saveErr := Execute(ctx, []string{"save", "--dataset", filepath.Join(dir, "family.yaml"), "--db", db, "--graph", "family"}, &bytes.Buffer{}, &bytes.Buffer{})
	out := &bytes.Buffer{}
	exportErr := Execute(ctx, []string{"export", "--db", db, "--graph", "family"}, out, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, saveErr)
	require.NoError(t, exportErr)
	assert.JSONEq(t,
		`{"V":[{"_id":1,"name":"Fred"},{"_id":2,"name":"Bob"},{"_id":3,"name":"Tom"}],"E":[{"_out":1,"_in":2,"_label":"son"},{"_out":2,"_in":3,"_label":"son"}]}`,
		out.String())
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		contains string
	}{
		{"unknown flag", []string{"query", "--this-is-not-a-valid-flag"}, "unknown flag"},
		{"bad log level", []string{"export", "--log-level", "loud"}, "LogLevel"},
		{"save without db", []string{"save"}, "--db"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			err := Execute(context.Background(), tc.args, &bytes.Buffer{}, &bytes.Buffer{})

			// --- Assert ---
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.contains)
		})
	}
}

func TestExecute_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := Execute(context.Background(), []string{"--help"}, out, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, strings.Contains(out.String(), "Usage:"))
	assert.Contains(t, out.String(), "serve")
}
