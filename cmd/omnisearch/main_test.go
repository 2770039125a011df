package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the app with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"omnisearch"}, args...))
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "keyword and text",
			args: []string{"parse", "--compact", "--no-offsets", "--keyword", "project", "project:core", "hello"},
			want: `{"text":"hello","project":"core","exclude":{}}`,
		},
		{
			name: "range",
			args: []string{"parse", "--compact", "--no-offsets", "-r", "date", "date:1-5"},
			want: `{"date":{"from":"1","to":"5"},"exclude":{}}`,
		},
		{
			name: "exclusion and always array",
			args: []string{"parse", "--compact", "--no-offsets", "--always-array", "-k", "label", "label:a", "-label:b"},
			want: `{"label":["a"],"exclude":{"label":["b"]}}`,
		},
		{
			name: "tokenized text",
			args: []string{"parse", "--compact", "--no-offsets", "--tokenize", `one "two three"`},
			want: `{"text":["one","two three"],"exclude":{}}`,
		},
		{
			name: "offsets",
			args: []string{"parse", "--compact", "hi"},
			want: `{"text":"hi","exclude":{},"offsets":[{"text":"hi","offsetStart":0,"offsetEnd":2}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestParseCommand_Indented(t *testing.T) {
	out, err := run(t, "parse", "--no-offsets", "hello")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"hello\",\n  \"exclude\": {}\n}\n", out)
}

func TestParseCommand_MissingQuery(t *testing.T) {
	_, err := run(t, "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY")
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "format", "-k", "project", "-r", "date", "date:1-2", "hello", "project:core", "-project:old")
	require.NoError(t, err)
	assert.Equal(t, "hello project:core date:1-2 -project:old\n", out)
}

func TestTranslateCommand(t *testing.T) {
	t.Run("jql", func(t *testing.T) {
		out, err := run(t, "translate", "--dialect", "jql", "project:CORE", "crash")
		require.NoError(t, err)
		assert.Equal(t, "text ~ \"crash\" AND project = \"CORE\"\n", out)
	})

	t.Run("dialect is required", func(t *testing.T) {
		_, err := run(t, "translate", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dialect")
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := run(t, "translate", "-d", "sql", "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sql")
	})
}

func TestDialectsCommand(t *testing.T) {
	out, err := run(t, "dialects")
	require.NoError(t, err)
	for _, name := range []string{"cql", "gmail", "jql", "slack"} {
		assert.Contains(t, out, name+"\t")
	}
}

func TestHistoryCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history")

	repo, err := badger.NewHistoryRepository(db)
	require.NoError(t, err)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.RecordSearch(ctx, core.NewHistoryEntry("older query", []string{"jira"}, 1, base)))
	require.NoError(t, repo.RecordSearch(ctx, core.NewHistoryEntry("newer query", []string{"jira", "slack"}, 5, base.Add(time.Minute))))
	require.NoError(t, repo.Close())

	out, err := run(t, "history", "list", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "\tnewer query"))
	assert.Contains(t, lines[0], "5 results\tjira,slack")
	assert.True(t, strings.HasSuffix(lines[1], "\tolder query"))

	out, err = run(t, "history", "list", "--db", db, "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, err = run(t, "history", "clear", "--db", db)
	require.NoError(t, err)

	out, err = run(t, "history", "list", "--db", db)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHistoryCommands_ConfigPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "omnisearch.yaml")
	db := filepath.Join(dir, "history")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history_path: "+db+"\n"), 0o600))

	out, err := run(t, "--config", cfgPath, "history", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.DirExists(t, db)
}

func TestSetupLogger(t *testing.T) {
	_, err := run(t, "--log-level", "debug", "dialects")
	assert.NoError(t, err)

	_, err = run(t, "--log-level", "verbose", "dialects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
