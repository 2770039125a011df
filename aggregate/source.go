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

package aggregate

import (
	"context"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/query"
)

// Source is one searchable service.
// Implementations must be safe for concurrent use.
type Source interface {
	// ID uniquely names the source within an aggregator.
	ID() string

	// Options returns the parser options for the source's vocabulary.
	Options() []query.Option

	// Search runs q against the service. Credential failures should wrap
	// ErrUnauthorized and transient failures ErrTemporary.
	Search(ctx context.Context, q *query.ParsedQuery) ([]core.Result, error)
}

// Reauthorizer is implemented by sources that can refresh their credentials.
type Reauthorizer interface {
	Reauthorize(ctx context.Context) error
}
