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
	"context"

	"github.com/poiesic/omnisearch/aggregate"
	"github.com/poiesic/omnisearch/query"
)

// configuredSource overrides a source's vocabulary with the configured one.
type configuredSource struct {
	aggregate.Source
	options []query.Option
}

// reauthConfiguredSource keeps the Reauthorizer of the wrapped source visible.
type reauthConfiguredSource struct {
	configuredSource
	reauth aggregate.Reauthorizer
}

func withOptions(src aggregate.Source, options []query.Option) aggregate.Source {
	cs := configuredSource{Source: src, options: options}
	if ra, ok := src.(aggregate.Reauthorizer); ok {
		return &reauthConfiguredSource{configuredSource: cs, reauth: ra}
	}
	return &cs
}

func (s *configuredSource) Options() []query.Option {
	return s.options
}

func (s *reauthConfiguredSource) Reauthorize(ctx context.Context) error {
	return s.reauth.Reauthorize(ctx)
}
