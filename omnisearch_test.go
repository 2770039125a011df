package omnisearch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/omnisearch/aggregate"
	"github.com/poiesic/omnisearch/aggregate/mock"
	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return config.NewConfig(
		config.WithPoolSize(2),
		config.WithSources(
			config.SourceConfig{ID: "jira", Dialect: "jql"},
			config.SourceConfig{ID: "notes", Keywords: []string{"tag"}},
		),
	)
}

func TestOpen(t *testing.T) {
	t.Run("create new engine", func(t *testing.T) {
		cfg := testConfig()
		cfg.HistoryPath = filepath.Join(t.TempDir(), "history")
		engine, err := Open(cfg)
		require.NoError(t, err)
		require.NotNil(t, engine)
		defer engine.Close()

		assert.NotNil(t, engine.HistoryRepository())
		assert.NotNil(t, engine.Registry())
		assert.Same(t, cfg, engine.Config())
		assert.DirExists(t, cfg.HistoryPath)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		engine, err := Open(nil, WithInMemoryHistory())
		require.NoError(t, err)
		defer engine.Close()
		assert.Equal(t, config.DefaultConfig().Timeout, engine.Config().Timeout)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.PoolSize = 0
		engine, err := Open(cfg, WithInMemoryHistory())
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Nil(t, engine)
	})

	t.Run("dialect missing from custom registry", func(t *testing.T) {
		engine, err := Open(testConfig(), WithInMemoryHistory(), WithRegistry(translate.NewRegistry()))
		assert.ErrorIs(t, err, translate.ErrUnknownDialect)
		assert.Nil(t, engine)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		cfg := testConfig()
		cfg.HistoryPath = tmpFile
		engine, err := Open(cfg)
		assert.Error(t, err)
		assert.Nil(t, engine)
	})
}

// lucene is a dialect outside the built-in registry.
type lucene struct{}

func (lucene) Name() string { return "lucene" }

func (lucene) Vocabulary() translate.Vocabulary {
	return translate.Vocabulary{Keywords: []string{"field"}}
}

func (lucene) Translate(q *query.ParsedQuery) string {
	text, _ := q.Text()
	if v, ok := q.Keywords["field"]; ok {
		return text + " +field:" + v.First()
	}
	return text
}

func TestOpen_CustomDialect(t *testing.T) {
	cfg := config.NewConfig(config.WithSources(config.SourceConfig{ID: "index", Dialect: "lucene"}))

	t.Run("unknown to the default registry", func(t *testing.T) {
		_, err := Open(cfg, WithInMemoryHistory())
		assert.ErrorIs(t, err, translate.ErrUnknownDialect)
	})

	t.Run("registered dialect", func(t *testing.T) {
		registry := translate.DefaultRegistry()
		require.NoError(t, registry.Register(lucene{}))

		engine, err := Open(cfg, WithInMemoryHistory(), WithRegistry(registry))
		require.NoError(t, err)
		defer engine.Close()

		p, err := engine.Parser("index")
		require.NoError(t, err)
		assert.True(t, p.IsKeyword("field"))

		out, err := engine.Translate("index", "crash field:title")
		require.NoError(t, err)
		assert.Equal(t, "crash +field:title", out)
	})
}

func TestEngine_Close(t *testing.T) {
	engine, err := Open(testConfig(), WithInMemoryHistory())
	require.NoError(t, err)
	assert.NoError(t, engine.Close())
}

func TestEngine_Parser(t *testing.T) {
	engine, err := Open(testConfig(), WithInMemoryHistory())
	require.NoError(t, err)
	defer engine.Close()

	p, err := engine.Parser("notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag"}, p.Keywords())

	p, err = engine.Parser("jira")
	require.NoError(t, err)
	assert.True(t, p.IsKeyword("project"))

	_, err = engine.Parser("wiki")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestEngine_Translate(t *testing.T) {
	engine, err := Open(testConfig(), WithInMemoryHistory())
	require.NoError(t, err)
	defer engine.Close()

	jql, err := engine.Translate("jira", "project:CORE crash")
	require.NoError(t, err)
	assert.Equal(t, `text ~ "crash" AND project = "CORE"`, jql)

	_, err = engine.Translate("notes", "tag:x")
	assert.ErrorIs(t, err, ErrNoDialect)

	_, err = engine.Translate("wiki", "x")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestEngine_NewAggregator(t *testing.T) {
	engine, err := Open(testConfig(), WithInMemoryHistory())
	require.NoError(t, err)
	defer engine.Close()

	// The source declares no vocabulary; the configuration supplies jql's.
	jira := mock.NewMockReauthSource("jira")
	calls := 0
	jira.SearchFunc = func(ctx context.Context, q *query.ParsedQuery) ([]core.Result, error) {
		calls++
		if calls == 1 {
			return nil, aggregate.ErrUnauthorized
		}
		return []core.Result{{Title: q.Keywords["project"].First()}}, nil
	}
	other := mock.NewMockSource("other", query.WithKeywords("in"))

	agg, err := engine.NewAggregator([]aggregate.Source{jira, other})
	require.NoError(t, err)
	defer agg.Close()

	ctx := context.Background()
	resp, err := agg.Search(ctx, "project:CORE in:general")
	require.NoError(t, err)

	require.NoError(t, resp.Outcomes[0].Err)
	assert.Equal(t, "CORE", resp.Outcomes[0].Results[0].Title)
	assert.Equal(t, 1, jira.ReauthCount())

	assert.Equal(t, []string{"general"}, resp.Outcomes[1].Query.Keywords["in"].Values())

	entries, err := engine.HistoryRepository().RecentSearches(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "project:CORE in:general", entries[0].Query)
	assert.Equal(t, 2, entries[0].ResultCount)
}

func TestEngine_NewAggregator_Errors(t *testing.T) {
	engine, err := Open(testConfig(), WithInMemoryHistory())
	require.NoError(t, err)
	defer engine.Close()

	_, err = engine.NewAggregator(nil)
	assert.True(t, errors.Is(err, aggregate.ErrNoSources))

	_, err = engine.NewAggregator([]aggregate.Source{nil})
	assert.True(t, errors.Is(err, aggregate.ErrNilSource))
}
