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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/translate"
	"gopkg.in/yaml.v3"
)

// Config holds the aggregator configuration.
type Config struct {
	// HistoryPath is the directory of the search history database.
	// A leading "~/" expands to the user's home directory.
	// Default: "~/.omnisearch/history"
	HistoryPath string `yaml:"history_path"`

	// PoolSize is the number of sources searched concurrently.
	// Default: NumCPU/2, at least 1
	PoolSize int `yaml:"pool_size"`

	// Timeout bounds each source's search.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one search source.
type SourceConfig struct {
	ID string `yaml:"id"`

	// Dialect names the translator for the source's native query syntax,
	// e.g. "jql". Optional when Keywords or Ranges are set.
	Dialect string `yaml:"dialect"`

	Keywords    []string `yaml:"keywords"`
	Ranges      []string `yaml:"ranges"`
	AlwaysArray bool     `yaml:"always_array"`
	Tokenize    bool     `yaml:"tokenize"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHistoryPath sets the history database directory.
func WithHistoryPath(path string) ConfigOption {
	return func(c *Config) {
		c.HistoryPath = path
	}
}

// WithPoolSize sets the number of concurrent source searches.
func WithPoolSize(size int) ConfigOption {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithTimeout sets the per-source timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithSources appends source configurations.
func WithSources(sources ...SourceConfig) ConfigOption {
	return func(c *Config) {
		c.Sources = append(c.Sources, sources...)
	}
}

// DefaultConfig returns a Config with defaults and no sources.
func DefaultConfig() *Config {
	return &Config{
		HistoryPath: "~/.omnisearch/history",
		PoolSize:    max(1, runtime.NumCPU()/2),
		Timeout:     10 * time.Second,
		LogLevel:    "info",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithPoolSize(8),
//	    WithSources(SourceConfig{ID: "jira", Dialect: "jql"}),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads and validates the YAML configuration at path. Dialect names are
// not resolved; see Parse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration. Fields absent from data
// keep their default values; unknown fields are rejected. Dialect names are
// left for ValidateWith, since the registry they resolve against is chosen
// by the caller.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	if err := cfg.ValidateWith(nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is valid and complete, resolving
// dialects against the built-in registry.
func (c *Config) Validate() error {
	return c.ValidateWith(translate.DefaultRegistry())
}

// ValidateWith checks the configuration and resolves every source dialect
// against registry. A nil registry skips dialect resolution.
func (c *Config) ValidateWith(registry *translate.Registry) error {
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool_size must be at least 1, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		if strings.TrimSpace(src.ID) == "" {
			return fmt.Errorf("%w: source %d has no id", ErrInvalidConfig, i)
		}
		if seen[src.ID] {
			return fmt.Errorf("%w: duplicate source id %q", ErrInvalidConfig, src.ID)
		}
		seen[src.ID] = true
		if err := src.validate(registry); err != nil {
			return err
		}
	}
	return nil
}

func (s SourceConfig) validate(registry *translate.Registry) error {
	if s.Dialect == "" && len(s.Keywords) == 0 && len(s.Ranges) == 0 {
		return fmt.Errorf("%w: source %q needs a dialect or a vocabulary", ErrInvalidConfig, s.ID)
	}
	if s.Dialect != "" && registry != nil {
		if _, err := registry.Lookup(s.Dialect); err != nil {
			return fmt.Errorf("%w: source %q: %w", ErrInvalidConfig, s.ID, err)
		}
	}
	for _, k := range s.Keywords {
		if slices.Contains(s.Ranges, k) {
			return fmt.Errorf("%w: source %q: %q is both a keyword and a range", ErrInvalidConfig, s.ID, k)
		}
	}
	return nil
}

// QueryOptions returns the parser options for the source, resolving the
// dialect against the built-in registry.
func (s SourceConfig) QueryOptions() ([]query.Option, error) {
	return s.QueryOptionsFrom(translate.DefaultRegistry())
}

// QueryOptionsFrom returns the parser options for the source. When both
// Keywords and Ranges are unset the dialect's vocabulary is used.
func (s SourceConfig) QueryOptionsFrom(registry *translate.Registry) ([]query.Option, error) {
	vocab := translate.Vocabulary{Keywords: s.Keywords, Ranges: s.Ranges}
	if len(s.Keywords) == 0 && len(s.Ranges) == 0 && s.Dialect != "" {
		d, err := registry.Lookup(s.Dialect)
		if err != nil {
			return nil, err
		}
		vocab = d.Vocabulary()
	}

	opts := vocab.Options()
	opts = append(opts,
		query.WithAlwaysArray(s.AlwaysArray),
		query.WithTokenize(s.Tokenize),
	)
	return opts, nil
}

// ResolvedHistoryPath returns HistoryPath with a leading "~/" expanded.
func (c *Config) ResolvedHistoryPath() (string, error) {
	return ExpandPath(c.HistoryPath)
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
}
