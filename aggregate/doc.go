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

// Package aggregate fans a single user query out to many search sources.
//
// Each Source declares the vocabulary its parser recognizes, so the raw input
// is parsed once per source. Searches run concurrently on a bounded worker
// pool with a per-source timeout:
//   - a failing source never fails the others; its error is kept in its Outcome
//   - a source that reports ErrUnauthorized and implements Reauthorizer is
//     reauthorized and searched once more
//   - errors wrapping ErrTemporary are retried with exponential backoff when
//     WithRetry is set
//
// When a history repository is attached, every non-blank query is recorded
// along with the sources it went to and the number of results.
package aggregate
