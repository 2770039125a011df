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

// Package translate renders parsed queries into the native query syntax of
// individual search services.
//
// Each Dialect owns a Vocabulary (the keywords and ranges it understands) and
// a Translate method. Parse with the dialect's vocabulary, then translate:
//
//	d, _ := translate.DefaultRegistry().Lookup("jql")
//	q := query.Parse("crash project:CORE -status:Done", d.Vocabulary().Options()...)
//	d.Translate(q) // text ~ "crash" AND project = "CORE" AND status != "Done"
//
// Built-in dialects:
//   - jql: Jira Query Language
//   - cql: Confluence Query Language
//   - gmail: Gmail search operators
//   - slack: Slack search modifiers
package translate
