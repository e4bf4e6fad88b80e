package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/qrewrite/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weakAndTree = `{"kind":"weakand","children":[{"kind":"term","index":"default","word":"war"}]}`

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"qrewrite", "--no-color", "--no-multilang"}, args...))
	return out.String(), err
}

func TestRewriteCommand_JSON(t *testing.T) {
	out, err := runApp(t, "", "rewrite",
		"--tree", weakAndTree,
		"--stem-filter", `[{"language":"en","stems":["war"]},{"language":"de","stems":["krieg"]}]`)
	require.NoError(t, err)

	got, err := query.Unmarshal([]byte(strings.TrimSpace(out)))
	require.NoError(t, err)

	war := query.NewTerm("default", "war")
	want := query.Or(
		query.And(query.WeakAnd(war), query.Not(&query.RegexMatch{Index: "language", Pattern: "(en|de)", Negated: true})),
		query.And(query.WeakAnd(), query.NewRegex("language", "en")),
		query.And(query.WeakAnd(war), query.NewRegex("language", "de")),
	)
	assert.True(t, query.Equal(want, got), "got %s", got)
}

func TestRewriteCommand_Text(t *testing.T) {
	out, err := runApp(t, "", "rewrite", "--format", "text", "--language", "en", "war", "mission")
	require.NoError(t, err)
	assert.Equal(t, "AND(default:war mission language:/en/)\n", out)
}

func TestRewriteCommand_Errors(t *testing.T) {
	t.Run("no query", func(t *testing.T) {
		_, err := runApp(t, "", "rewrite")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--tree")
	})

	t.Run("bad tree", func(t *testing.T) {
		_, err := runApp(t, "", "rewrite", "--tree", `{"kind":"xor"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid query tree")
	})

	t.Run("bad stem filter", func(t *testing.T) {
		_, err := runApp(t, "", "rewrite", "--tree", weakAndTree, "--stem-filter", "[")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stemfilter")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := runApp(t, "", "rewrite", "--format", "yaml", "war")
		require.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, err := runApp(t, "", "--log-level", "loud", "rewrite", "war")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestBatchCommand(t *testing.T) {
	input := strings.Join([]string{
		`{"tree": ` + weakAndTree + `, "properties": {"stemFilter": "[{\"language\":\"en\",\"stems\":[\"war\"]}]"}}`,
		``,
		`{"tree": {"kind":"term","index":"default","word":"peace"}}`,
		`{"tree": ` + weakAndTree + `, "properties": {"stemFilter": "not json"}}`,
	}, "\n")

	out, err := runApp(t, input, "batch", "--pool-size", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var results []batchOutput
	for _, line := range lines {
		var r batchOutput
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		results = append(results, r)
	}

	assert.Equal(t, 1, results[0].Line)
	assert.Empty(t, results[0].Error)
	root, err := query.Unmarshal(results[0].Tree)
	require.NoError(t, err)
	assert.True(t, query.IsComposite(root, query.KindOr))

	assert.Equal(t, 3, results[1].Line)
	root, err = query.Unmarshal(results[1].Tree)
	require.NoError(t, err)
	assert.True(t, query.Equal(query.NewTerm("default", "peace"), root))

	assert.Equal(t, 4, results[2].Line)
	assert.Contains(t, results[2].Error, "stemfilter")
	assert.Empty(t, results[2].Tree)
}

func TestBatchCommand_InvalidLine(t *testing.T) {
	_, err := runApp(t, "{\"tree\": 1}\n", "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestExplainCommand(t *testing.T) {
	out, err := runApp(t, "", "explain",
		"--tree", weakAndTree,
		"--stem-filter", `[{"language":"en","stems":["war"]}]`)
	require.NoError(t, err)

	assert.Contains(t, out, "Input\n  WEAKAND(default:war)\n")
	assert.Contains(t, out, "stages: stemfilter")
	assert.Contains(t, out, "Filtering done: [en:[war]]")
	assert.Contains(t, out, "Output\n  OR(")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrewrite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stem_filter:\n  language_field: lang\n"), 0o600))

	out, err := runApp(t, "", "--config", path, "rewrite", "--format", "text",
		"--tree", weakAndTree,
		"--stem-filter", `[{"language":"en","stems":["war"]}]`)
	require.NoError(t, err)
	assert.Contains(t, out, "lang:/en/")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("QREWRITE_TEST_ENV_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("QREWRITE_TEST_ENV_FILE") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("QREWRITE_TEST_ENV_FILE"))
}
