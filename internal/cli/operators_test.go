package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorsDefaultTable(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewOperatorsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "-eq")
	assert.Contains(t, output, "LIKE")
	assert.Contains(t, output, "ISEMPTY")
}

func TestOperatorsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewOperatorsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	ops, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.NotEmpty(t, ops)

	first, ok := ops[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, first, "name")
	assert.Contains(t, first, "query_operator")
	assert.Contains(t, first, "requires_value")
}

func TestOperatorsWithOverride(t *testing.T) {
	opsPath := filepath.Join(t.TempDir(), "ops.cue")
	require.NoError(t, os.WriteFile(opsPath, []byte(`operators: "-contains": {token: "CONTAINS"}`), 0644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Operators: opsPath}
	cmd := NewOperatorsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "-contains")
	assert.NotContains(t, output, "-eq")
}

func TestOperatorsBadOverride(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", Operators: filepath.Join(t.TempDir(), "missing.cue")}
	cmd := NewOperatorsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeTable)
}
