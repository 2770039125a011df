// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package omnisearch

import (
	"fmt"
	"log/slog"

	"github.com/poiesic/omnisearch/aggregate"
	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/storage"
	"github.com/poiesic/omnisearch/storage/badger"
	"github.com/poiesic/omnisearch/translate"
)

// Engine ties a configuration to its history store, dialect registry and
// per-source parsers.
type Engine struct {
	cfg      *config.Config
	history  storage.HistoryRepository
	registry *translate.Registry
	sources  map[string]config.SourceConfig
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	inMemory bool
	registry *translate.Registry
	logger   *slog.Logger
}

// WithInMemoryHistory keeps the search history in memory instead of at
// the configured history path.
func WithInMemoryHistory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithRegistry replaces the built-in dialect registry. Source dialects in
// the configuration are resolved against registry.
func WithRegistry(registry *translate.Registry) EngineOption {
	return func(o *engineOptions) {
		o.registry = registry
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// Open validates cfg and opens the history store it names.
func Open(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		registry: translate.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.registry == nil {
		options.registry = translate.DefaultRegistry()
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	// Dialects resolve against the engine's registry so a bad dialect
	// fails here and not on the first search.
	if err := cfg.ValidateWith(options.registry); err != nil {
		return nil, err
	}

	sources := make(map[string]config.SourceConfig, len(cfg.Sources))
	for _, src := range cfg.Sources {
		sources[src.ID] = src
	}

	var (
		history storage.HistoryRepository
		err     error
	)
	backendLogger := badger.WithBackendLogger(options.logger)
	if options.inMemory {
		history, err = badger.NewMemoryHistoryRepository(backendLogger)
	} else {
		var path string
		path, err = cfg.ResolvedHistoryPath()
		if err != nil {
			return nil, err
		}
		history, err = badger.NewHistoryRepository(path, backendLogger)
	}
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:      cfg,
		history:  history,
		registry: options.registry,
		sources:  sources,
		logger:   options.logger,
	}, nil
}

// Close closes the history store.
func (e *Engine) Close() error {
	if err := e.history.Close(); err != nil {
		e.logger.Error("error closing history repository", "err", err)
		return err
	}
	return nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// HistoryRepository returns the search history store.
func (e *Engine) HistoryRepository() storage.HistoryRepository {
	return e.history
}

// Registry returns the dialect registry.
func (e *Engine) Registry() *translate.Registry {
	return e.registry
}

// Parser returns a parser for the configured source's vocabulary.
func (e *Engine) Parser(sourceID string) (*query.Parser, error) {
	src, ok := e.sources[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, sourceID)
	}
	opts, err := src.QueryOptionsFrom(e.registry)
	if err != nil {
		return nil, err
	}
	return query.NewParser(opts...), nil
}

// Translate parses input with the source's vocabulary and renders it in
// the source's dialect.
func (e *Engine) Translate(sourceID, input string) (string, error) {
	src, ok := e.sources[sourceID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, sourceID)
	}
	if src.Dialect == "" {
		return "", fmt.Errorf("%w: %q", ErrNoDialect, sourceID)
	}
	dialect, err := e.registry.Lookup(src.Dialect)
	if err != nil {
		return "", err
	}
	p, err := e.Parser(sourceID)
	if err != nil {
		return "", err
	}
	return dialect.Translate(p.Parse(input)), nil
}

// NewAggregator creates an aggregator over sources, configured from the
// engine: pool size, timeout, logger and history come first so opts can
// override them. Sources with an entry in the configuration parse with the
// configured vocabulary instead of their own.
func (e *Engine) NewAggregator(sources []aggregate.Source, opts ...aggregate.Option) (*aggregate.Aggregator, error) {
	wrapped := make([]aggregate.Source, len(sources))
	for i, src := range sources {
		wrapped[i] = src
		if src == nil {
			continue
		}
		if cfg, ok := e.sources[src.ID()]; ok {
			options, err := cfg.QueryOptionsFrom(e.registry)
			if err != nil {
				return nil, err
			}
			wrapped[i] = withOptions(src, options)
		}
	}

	base := []aggregate.Option{
		aggregate.WithLogger(e.logger),
		aggregate.WithPoolSize(e.cfg.PoolSize),
		aggregate.WithTimeout(e.cfg.Timeout),
		aggregate.WithHistory(e.history),
	}
	return aggregate.NewAggregator(wrapped, append(base, opts...)...)
}
