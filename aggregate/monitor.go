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

import "github.com/poiesic/omnisearch/query"

// Monitor receives callbacks while a search runs. SourceStarted and
// SourceFinished are called from worker goroutines and may run concurrently.
type Monitor interface {
	Start(input string, sourceIDs []string)
	SourceStarted(sourceID string, q *query.ParsedQuery)
	SourceFinished(outcome Outcome)
	Finish(resp *Response)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)                   {}
func (n *noopMonitor) SourceStarted(_ string, _ *query.ParsedQuery) {}
func (n *noopMonitor) SourceFinished(_ Outcome)                     {}
func (n *noopMonitor) Finish(_ *Response)                           {}
