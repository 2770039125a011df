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

import "errors"

var (
	// ErrNoSources is returned when an aggregator is created without sources.
	ErrNoSources = errors.New("at least one source required")

	// ErrNilSource is returned when a source in the list is nil.
	ErrNilSource = errors.New("source cannot be nil")

	// ErrDuplicateSource is returned when two sources share an ID.
	ErrDuplicateSource = errors.New("duplicate source id")

	// ErrPoolClosed is returned when searching after Close.
	ErrPoolClosed = errors.New("aggregator is closed")

	// ErrUnauthorized is wrapped by sources whose credentials were rejected.
	ErrUnauthorized = errors.New("source unauthorized")

	// ErrTemporary is wrapped by sources for failures worth retrying.
	ErrTemporary = errors.New("temporary source failure")

	// ErrSourcePanic is reported in an Outcome when a source panicked.
	ErrSourcePanic = errors.New("source panicked")

	// ErrInvalidMaxAttempts is returned when WithRetry is given fewer than 1 attempt.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
