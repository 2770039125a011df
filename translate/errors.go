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

import "errors"

var (
	// ErrUnknownDialect is returned when no dialect has the requested name.
	ErrUnknownDialect = errors.New("unknown dialect")

	// ErrDuplicateDialect is returned when registering a name twice.
	ErrDuplicateDialect = errors.New("dialect already registered")

	// ErrInvalidDialect is returned when registering a nil or unnamed dialect.
	ErrInvalidDialect = errors.New("invalid dialect")
)
