package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snquery/snquery/internal/queryir"
)

func writeQueryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadQueryFile_Advanced(t *testing.T) {
	path := writeQueryFile(t, `
filter:
  - [state, -eq, "1"]
  - or
  - [short_description, -like, powershell]
sort:
  - [opened_at, desc]
  - [state]
`)

	doc, err := LoadQueryFile(path)
	require.NoError(t, err)
	assert.False(t, doc.IsBasic())
	assert.NotNil(t, doc.Filter)
	assert.NotNil(t, doc.Sort)
}

func TestLoadQueryFile_Basic(t *testing.T) {
	path := writeQueryFile(t, `
basic:
  order_by: opened_at
  direction: desc
  match_exact:
    state: "1"
`)

	doc, err := LoadQueryFile(path)
	require.NoError(t, err)
	require.True(t, doc.IsBasic())
	assert.Equal(t, "opened_at", doc.Basic.OrderBy)
	assert.Equal(t, map[string]string{"state": "1"}, doc.Basic.MatchExact)
}

func TestLoadQueryFile_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		wantCode string
	}{
		{
			name:     "mode conflict",
			content:  "basic: {order_by: opened_at}\nfilter: [state, -eq, \"1\"]\n",
			wantCode: ErrCodeModeConflict,
		},
		{
			name:     "empty document",
			content:  "# nothing here\n",
			wantCode: ErrCodeEmpty,
		},
		{
			name:     "yaml syntax error",
			content:  "filter: [unclosed\n",
			wantCode: ErrCodeParse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeQueryFile(t, tc.content)

			_, err := LoadQueryFile(path)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.wantCode, le.Code)
		})
	}
}

func TestLoadQueryFile_NotFound(t *testing.T) {
	_, err := LoadQueryFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestBuildQuery_Advanced(t *testing.T) {
	doc := &QueryFile{
		Filter: []any{
			[]any{"state", "-eq", "1"},
			"or",
			[]any{"short_description", "-like", "powershell"},
		},
		Sort: []any{[]any{"opened_at", "desc"}, []any{"state"}},
	}

	query, err := BuildQuery(doc, queryir.DefaultTable())
	require.NoError(t, err)
	assert.Equal(t, "state=1^ORshort_descriptionLIKEpowershell^ORDERBYDESCopened_at^ORDERBYstate", query)
}

func TestBuildQuery_Basic(t *testing.T) {
	doc := &QueryFile{
		Basic: &BasicSpec{
			OrderBy:    "opened_at",
			Direction:  "desc",
			MatchExact: map[string]string{"state": "1"},
		},
	}

	query, err := BuildQuery(doc, queryir.DefaultTable())
	require.NoError(t, err)
	assert.Equal(t, "ORDERBYDESCopened_at^state=1", query)
}

func TestBuildQuery_BasicInvalidDirection(t *testing.T) {
	doc := &QueryFile{
		Basic: &BasicSpec{Direction: "sideways"},
	}

	_, err := BuildQuery(doc, queryir.DefaultTable())
	require.Error(t, err)
	assert.Equal(t, queryir.ErrCodeInvalidDirection, queryir.CodeOf(err))
}

func TestBuildQuery_TrailingJoin(t *testing.T) {
	doc := &QueryFile{
		Filter: []any{[]any{"state", "-eq", "1"}, "and"},
	}

	query, err := BuildQuery(doc, queryir.DefaultTable())
	require.Error(t, err)
	assert.Equal(t, queryir.ErrCodeTrailingJoin, queryir.CodeOf(err))
	assert.Equal(t, "", query)
}

func TestMapBuildErrorCode(t *testing.T) {
	testCases := []struct {
		in   queryir.BuildErrorCode
		want string
	}{
		{queryir.ErrCodeUnsupportedJoin, ErrCodeUnsupportedJoin},
		{queryir.ErrCodeTrailingJoin, ErrCodeTrailingJoin},
		{queryir.ErrCodeUnknownOperator, ErrCodeUnknownOperator},
		{queryir.ErrCodeMissingValue, ErrCodeMissingValue},
		{queryir.ErrCodeTooManyItems, ErrCodeTooManyItems},
		{queryir.ErrCodeInvalidDirection, ErrCodeInvalidDirection},
		{queryir.BuildErrorCode("SOMETHING_ELSE"), ErrCodeGeneric},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, MapBuildErrorCode(tc.in))
	}
}

func TestResolveTable_Default(t *testing.T) {
	table, err := ResolveTable(&RootOptions{})
	require.NoError(t, err)
	_, ok := table.Lookup("-eq")
	assert.True(t, ok)
}

func TestResolveTable_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.cue")
	require.NoError(t, os.WriteFile(path, []byte(`operators: "-contains": {token: "CONTAINS"}`), 0644))

	table, err := ResolveTable(&RootOptions{Operators: path})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestResolveTable_BadPath(t *testing.T) {
	_, err := ResolveTable(&RootOptions{Operators: filepath.Join(t.TempDir(), "missing.cue")})
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeTable, le.Code)
}
