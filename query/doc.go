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

// Package query parses free-text search strings into structured queries.
//
// A query string is a whitespace-separated list of terms. A term can be:
//
//   - plain text: hello
//   - a quoted phrase: "hello world" or 'hello world'
//   - a filter: project:foo, project:"foo bar", tag:a,b
//   - a range filter: date:2020-01-01 or size:10-20
//   - any of the above prefixed with "-" to exclude it: -draft, -project:foo
//
// Which keys are filters and which are ranges is decided by the caller:
//
//	q := query.Parse(`project:core -status:done "race condition"`,
//	    query.WithKeywords("project", "status"),
//	    query.WithRanges("created"),
//	)
//	text, _ := q.Text()               // "race condition"
//	q.Keywords["project"].First()     // "core"
//	q.Exclude["status"].First()       // "done"
//
// A key that is neither a keyword nor a range is kept as plain text of the
// form key:value. Parsing never fails: every input string has a result.
//
// A Parser holds no mutable state and is safe for concurrent use.
package query
