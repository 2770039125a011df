package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "~/.omnisearch/history", cfg.HistoryPath)
	assert.Equal(t, max(1, runtime.NumCPU()/2), cfg.PoolSize)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Sources)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with options", func(t *testing.T) {
		cfg := NewConfig(
			WithHistoryPath("/tmp/history"),
			WithPoolSize(3),
			WithTimeout(time.Second),
			WithLogLevel("debug"),
			WithSources(SourceConfig{ID: "jira", Dialect: "jql"}),
		)

		assert.Equal(t, "/tmp/history", cfg.HistoryPath)
		assert.Equal(t, 3, cfg.PoolSize)
		assert.Equal(t, time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "jira", cfg.Sources[0].ID)
	})
}

func TestParse(t *testing.T) {
	data := []byte(`
history_path: /var/lib/omnisearch
pool_size: 4
timeout: 2500ms
log_level: warn
sources:
  - id: jira
    dialect: jql
  - id: notes
    keywords: [tag, author]
    ranges: [date]
    always_array: true
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/omnisearch", cfg.HistoryPath)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, SourceConfig{ID: "jira", Dialect: "jql"}, cfg.Sources[0])
	assert.Equal(t, SourceConfig{
		ID:          "notes",
		Keywords:    []string{"tag", "author"},
		Ranges:      []string{"date"},
		AlwaysArray: true,
	}, cfg.Sources[1])
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"malformed yaml", "sources: [", ErrReadConfig},
		{"unknown field", "pool_sise: 3\n", ErrReadConfig},
		{"bad duration", "timeout: soon\n", ErrReadConfig},
		{"zero pool", "pool_size: 0\n", ErrInvalidConfig},
		{"negative timeout", "timeout: -1s\n", ErrInvalidConfig},
		{"bad log level", "log_level: loud\n", ErrInvalidConfig},
		{"missing id", "sources:\n  - dialect: jql\n", ErrInvalidConfig},
		{"duplicate id", "sources:\n  - {id: a, dialect: jql}\n  - {id: a, dialect: cql}\n", ErrInvalidConfig},
		{"no vocabulary", "sources:\n  - {id: a}\n", ErrInvalidConfig},
		{"keyword is range", "sources:\n  - {id: a, keywords: [date], ranges: [date]}\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_ValidateWith(t *testing.T) {
	cfg := NewConfig(WithSources(SourceConfig{ID: "db", Dialect: "sql"}))

	t.Run("unknown to the built-in registry", func(t *testing.T) {
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, translate.ErrUnknownDialect)
	})

	t.Run("nil registry skips dialects", func(t *testing.T) {
		assert.NoError(t, cfg.ValidateWith(nil))
	})

	t.Run("empty registry", func(t *testing.T) {
		err := cfg.ValidateWith(translate.NewRegistry())
		assert.ErrorIs(t, err, translate.ErrUnknownDialect)
	})

	t.Run("registry that knows the dialect", func(t *testing.T) {
		registry := translate.NewRegistry(translate.JQL())
		require.NoError(t, NewConfig(WithSources(SourceConfig{ID: "jira", Dialect: "jql"})).ValidateWith(registry))
	})

	t.Run("structure is still checked", func(t *testing.T) {
		bad := NewConfig(WithPoolSize(0), WithSources(SourceConfig{ID: "db", Dialect: "sql"}))
		assert.ErrorIs(t, bad.ValidateWith(nil), ErrInvalidConfig)
	})
}

func TestParse_LeavesDialectsUnresolved(t *testing.T) {
	cfg, err := Parse([]byte("sources:\n  - {id: a, dialect: sql}\n"))
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.Sources[0].Dialect)
	assert.ErrorIs(t, cfg.Validate(), translate.ErrUnknownDialect)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnisearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool_size: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.PoolSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestSourceConfig_QueryOptions(t *testing.T) {
	t.Run("explicit vocabulary", func(t *testing.T) {
		src := SourceConfig{ID: "notes", Keywords: []string{"tag"}, Ranges: []string{"date"}, AlwaysArray: true}
		opts, err := src.QueryOptions()
		require.NoError(t, err)

		q := query.Parse("tag:go date:1-2 hello", opts...)
		assert.Equal(t, []string{"go"}, q.Keywords["tag"].Values())
		assert.True(t, q.Keywords["tag"].IsMultiple())
		assert.Equal(t, query.Range{From: "1", To: "2", HasTo: true}, q.Ranges["date"])
	})

	t.Run("dialect fallback", func(t *testing.T) {
		src := SourceConfig{ID: "jira", Dialect: "jql"}
		opts, err := src.QueryOptions()
		require.NoError(t, err)

		p := query.NewParser(opts...)
		jql, err := translate.DefaultRegistry().Lookup("jql")
		require.NoError(t, err)
		assert.Equal(t, jql.Vocabulary().Keywords, p.Keywords())
		assert.Equal(t, jql.Vocabulary().Ranges, p.Ranges())
	})

	t.Run("explicit vocabulary overrides dialect", func(t *testing.T) {
		src := SourceConfig{ID: "jira", Dialect: "jql", Keywords: []string{"project"}}
		opts, err := src.QueryOptions()
		require.NoError(t, err)

		p := query.NewParser(opts...)
		assert.Equal(t, []string{"project"}, p.Keywords())
		assert.Empty(t, p.Ranges())
	})

	t.Run("unknown dialect", func(t *testing.T) {
		src := SourceConfig{ID: "x", Dialect: "nope"}
		_, err := src.QueryOptions()
		assert.ErrorIs(t, err, translate.ErrUnknownDialect)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~", home},
		{"~/.omnisearch/history", filepath.Join(home, ".omnisearch/history")},
		{"~user/x", "~user/x"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ExpandPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
