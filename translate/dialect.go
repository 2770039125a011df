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

package translate

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/poiesic/omnisearch/query"
)

// Dialect translates parsed queries into one service's query syntax.
// Implementations must be safe for concurrent use.
type Dialect interface {
	// Name is the registry key of the dialect, e.g. "jql".
	Name() string

	// Vocabulary returns the keywords and ranges the dialect translates.
	Vocabulary() Vocabulary

	// Translate renders q. Keywords and ranges outside the vocabulary are
	// ignored. An empty query translates to "".
	Translate(q *query.ParsedQuery) string
}

// Vocabulary is the set of filter names a search source understands.
type Vocabulary struct {
	Keywords []string
	Ranges   []string
}

// Options returns parser options recognizing the vocabulary.
func (v Vocabulary) Options() []query.Option {
	return []query.Option{
		query.WithKeywords(v.Keywords...),
		query.WithRanges(v.Ranges...),
	}
}

// Parser returns a parser recognizing the vocabulary, with extra options
// applied after it.
func (v Vocabulary) Parser(opts ...query.Option) *query.Parser {
	return query.NewParser(append(v.Options(), opts...)...)
}

// Registry maps dialect names to dialects.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry creates a registry holding the given dialects. Later
// dialects replace earlier ones with the same name.
func NewRegistry(dialects ...Dialect) *Registry {
	r := &Registry{dialects: make(map[string]Dialect, len(dialects))}
	for _, d := range dialects {
		r.dialects[d.Name()] = d
	}
	return r
}

// DefaultRegistry returns a new registry with all built-in dialects.
func DefaultRegistry() *Registry {
	return NewRegistry(JQL(), CQL(), Gmail(), Slack())
}

// Register adds a dialect. It fails if the name is empty or taken.
func (r *Registry) Register(d Dialect) error {
	if d == nil || d.Name() == "" {
		return ErrInvalidDialect
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dialects[d.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDialect, d.Name())
	}
	r.dialects[d.Name()] = d
	return nil
}

// Lookup returns the dialect registered under name.
func (r *Registry) Lookup(name string) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names returns the registered dialect names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// quoted wraps s in double quotes, escaping quotes and backslashes.
func quoted(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// quotedIfNeeded quotes s when it contains whitespace or a character in
// special.
func quotedIfNeeded(s, special string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '"' || strings.ContainsRune(special, r)
	}) {
		return quoted(s)
	}
	return s
}

// nonEmpty returns the non-empty strings of vs.
func nonEmpty(vs []string) []string {
	return slices.DeleteFunc(slices.Clone(vs), func(s string) bool { return s == "" })
}
